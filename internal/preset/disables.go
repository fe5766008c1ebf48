package preset

import (
	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
)

// Disables: 针对脚本、CLI、bin、声明文件、测试、CommonJS 与配置文件的放宽片段。
// 追加于所有主题之后，使窄范围例外覆盖主题规则。
func Disables() []contract.Fragment {
	return []contract.Fragment{
		{
			Name:  Name("disables", "scripts"),
			Files: []string{"**/scripts/" + globs.Src},
			Rules: contract.Rules{
				"antfu/no-top-level-await":         contract.Off(),
				"no-console":                       contract.Off(),
				"ts/explicit-function-return-type": contract.Off(),
			},
		},
		{
			Name:  Name("disables", "cli"),
			Files: []string{"**/cli/" + globs.Src, "**/cli." + globs.SrcExt},
			Rules: contract.Rules{
				"antfu/no-top-level-await": contract.Off(),
				"no-console":               contract.Off(),
			},
		},
		{
			Name:  Name("disables", "bin"),
			Files: []string{"**/bin/**/*", "**/bin." + globs.SrcExt},
			Rules: contract.Rules{
				"antfu/no-import-dist":                 contract.Off(),
				"antfu/no-import-node-modules-by-path": contract.Off(),
			},
		},
		{
			Name:  Name("disables", "dts"),
			Files: []string{globs.DTS},
			Rules: contract.Rules{
				"eslint-comments/no-unlimited-disable": contract.Off(),
				"import/no-duplicates":                 contract.Off(),
				"no-restricted-syntax":                 contract.Off(),
				"unused-imports/no-unused-vars":        contract.Off(),
			},
		},
		{
			Name:  Name("disables", "test"),
			Files: []string{globs.Test},
			Rules: contract.Rules{
				"antfu/no-top-level-await": contract.Off(),
				"no-unused-expressions":    contract.Off(),
			},
		},
		{
			Name:  Name("disables", "cjs"),
			Files: []string{"**/*.js", "**/*.cjs"},
			Rules: contract.Rules{
				"ts/no-require-imports": contract.Off(),
			},
		},
		{
			Name:  Name("disables", "config-files"),
			Files: []string{"**/*.config." + globs.SrcExt, "**/*.config.*." + globs.SrcExt},
			Rules: contract.Rules{
				"antfu/no-top-level-await":         contract.Off(),
				"no-console":                       contract.Off(),
				"ts/explicit-function-return-type": contract.Off(),
			},
		},
	}
}
