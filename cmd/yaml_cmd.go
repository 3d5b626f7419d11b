package cmd

import (
	"bytes"
	"time"

	"github.com/dzjyyds666/aq-lite/parse/yaml"
	"github.com/dzjyyds666/aq-lite/pkg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type YamlParams struct {
	Find     string       `json:"find"`      // 查找的路径，如 servers.0.host 或 servers[0].host
	Input    string       `json:"input"`     // 输入文件路径，- 表示标准输入
	Output   string       `json:"output"`    // 输出文件地址，为空时输出到标准输出
	Format   outputFormat `json:"format"`    // 输出格式 json|yaml
	Pretty   bool         `json:"pretty"`    // json 缩进输出
	Tokens   bool         `json:"tokens"`    // 只输出规范化后的 token
	MaxDepth int          `json:"max_depth"` // 最大嵌套深度
	Verbose  bool         `json:"verbose"`   // 打印 debug 日志
}

func newYamlCmd() *cobra.Command {
	params := &YamlParams{Format: formatJSON}
	cmd := &cobra.Command{
		Use:   "yaml",
		Short: "yaml parse tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return yamlRun(cmd, params)
		},
	}
	cmd.Flags().StringVarP(&params.Find, "find", "f", "", "path to select, e.g. servers.0.host")
	cmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, - for stdin")
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path, stdout when empty")
	cmd.Flags().Var(&params.Format, "format", "output format: json or yaml")
	cmd.Flags().BoolVar(&params.Pretty, "pretty", false, "indent json output")
	cmd.Flags().BoolVar(&params.Tokens, "tokens", false, "print the normalised tokens instead of the tree")
	cmd.Flags().IntVar(&params.MaxDepth, "max-depth", yaml.DefaultMaxDepth, "maximum nesting depth")
	cmd.Flags().BoolVarP(&params.Verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func yamlRun(cmd *cobra.Command, params *YamlParams) error {
	log := newLogger(cmd.ErrOrStderr(), params.Verbose)
	if len(params.Input) == 0 {
		return errors.New("no input file path")
	}
	text, err := pkg.ReadInput(params.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	log.WithField("input", params.Input).WithField("bytes", len(text)).Debug("input loaded")

	var out bytes.Buffer
	if params.Tokens {
		tokens, err := yaml.Tokenize(text)
		if err != nil {
			return errors.Wrapf(err, "tokenize %s", params.Input)
		}
		log.WithField("tokens", len(tokens)).Debug("tokenized")
		writeTokens(&out, tokens)
		return pkg.WriteOutput(params.Output, cmd.OutOrStdout(), out.Bytes())
	}

	steps, err := parsePath(params.Find)
	if err != nil {
		return err
	}
	start := time.Now()
	root, err := yaml.Parse(text, yaml.WithMaxDepth(params.MaxDepth))
	if err != nil {
		return errors.Wrapf(err, "parse %s", params.Input)
	}
	log.WithField("elapsed", time.Since(start)).Debug("parsed")

	node, err := yaml.Get(root, steps...)
	if err != nil {
		return errors.Wrapf(err, "find %q", params.Find)
	}
	if err := render(&out, node, params.Format, params.Pretty); err != nil {
		return err
	}
	return pkg.WriteOutput(params.Output, cmd.OutOrStdout(), out.Bytes())
}
