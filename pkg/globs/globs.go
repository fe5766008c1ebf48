// Package globs 汇总片段共用的文件模式。
// 模式采用 doublestar 兼容的花括号语法（不使用 extglob），下游引擎与 internal/match 均可直接识别。
package globs

const (
	SrcExt = "{js,mjs,cjs,jsx,ts,mts,cts,tsx}"
	Src    = "**/*." + SrcExt

	JS  = "**/*.{js,mjs,cjs}"
	JSX = "**/*.{jsx,mjsx,cjsx}"

	TS  = "**/*.{ts,mts,cts}"
	TSX = "**/*.{tsx,mtsx,ctsx}"
	DTS = "**/*.d.{ts,mts,cts}"

	JSON  = "**/*.json"
	JSON5 = "**/*.json5"
	JSONC = "**/*.jsonc"

	Svelte = "**/*.svelte"

	Test = "**/*.{test,spec}.{js,ts,jsx,tsx}"
)

// AllSrc: 所有受检源码模式。
func AllSrc() []string {
	return []string{Src, JSON, JSON5, Svelte}
}

// Exclude: 默认全局排除模式。
func Exclude() []string {
	return []string{
		"**/node_modules",
		"**/dist",
		"**/package-lock.json",
		"**/yarn.lock",
		"**/pnpm-lock.yaml",
		"**/bun.lockb",

		"**/output",
		"**/coverage",
		"**/temp",
		"**/.temp",
		"**/tmp",
		"**/.tmp",
		"**/.history",
		"**/.vitepress/cache",
		"**/.nuxt",
		"**/.next",
		"**/.svelte-kit",
		"**/.vercel",
		"**/.changeset",
		"**/.idea",
		"**/.cache",
		"**/.output",
		"**/.vite-inspect",
		"**/.yarn",
		"**/vite.config.*.timestamp-*",

		"**/CHANGELOG*.md",
		"**/*.min.*",
		"**/LICENSE*",
		"**/__snapshots__",
		"**/auto-import.d.ts",
		"**/auto-imports.d.ts",
		"**/components.d.ts",
	}
}

// Component 返回组件扩展名对应的模式（"vue" -> "**/*.vue"）。
func Component(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, "**/*."+e)
	}
	return out
}
