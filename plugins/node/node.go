// Package node 描述 eslint-plugin-n（绑定为 "node"）。
package node

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-n"

var rules = []string{
	"callback-return", "exports-style", "file-extension-in-import", "global-require",
	"handle-callback-err", "hashbang", "no-callback-literal", "no-deprecated-api",
	"no-exports-assign", "no-extraneous-import", "no-extraneous-require", "no-missing-import",
	"no-missing-require", "no-mixed-requires", "no-new-require", "no-path-concat",
	"no-process-env", "no-process-exit", "no-restricted-import", "no-restricted-require",
	"no-sync", "no-top-level-await", "no-unpublished-bin", "no-unpublished-import",
	"no-unpublished-require", "no-unsupported-features/es-builtins",
	"no-unsupported-features/es-syntax", "no-unsupported-features/node-builtins",
	"prefer-global/buffer", "prefer-global/console", "prefer-global/process",
	"prefer-global/text-decoder", "prefer-global/text-encoder", "prefer-global/url",
	"prefer-global/url-search-params", "prefer-node-protocol", "prefer-promises/dns",
	"prefer-promises/fs", "process-exit-as-throw",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "n", Rules: slices.Clone(rules)}
}
