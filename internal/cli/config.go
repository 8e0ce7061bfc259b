// Package cli 命令行工具共用的设置加载
//
// 优先级（高到低）：命令行参数 > GHOST_ 前缀的环境变量 > --config 指定的文件 > 参数默认值。
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// 公共设置键
const (
	KeyConfigFile = "config"
	KeyVerbose    = "verbose"
	KeyGameplay   = "gameplay-config"
)

// EnvPrefix 环境变量前缀，如 GHOST_PLANE_DELAY
const EnvPrefix = "GHOST"

// NewFlagSet 创建带公共参数的参数集
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(KeyConfigFile, "", "tool settings file (yaml, json or toml)")
	fs.Bool(KeyVerbose, false, "enable debug logging")
	fs.String(KeyGameplay, "", "gameplay tuning file (defaults to the embedded data/gameplay.yaml)")
	return fs
}

// Load 解析参数并合并环境变量和设置文件
func Load(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}
