// Package ghosthustlers 嵌入默认玩法配置
//
// 必须放在项目根目录（与 data/ 同级），
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件。
// 移动端和命令行工具在没有外部配置文件时使用此处的内容。
package ghosthustlers

import (
	_ "embed"

	"github.com/gonewx/ghosthustlers/pkg/config"
)

//go:embed data/gameplay.yaml
var defaultGameplayYAML []byte

// DefaultGameplayYAML 返回内置 data/gameplay.yaml 的副本
func DefaultGameplayYAML() []byte {
	return append([]byte(nil), defaultGameplayYAML...)
}

// LoadEmbeddedGameplayConfig 解析内置玩法配置
func LoadEmbeddedGameplayConfig() (*config.GameplayConfig, error) {
	return config.ParseGameplayConfig(defaultGameplayYAML)
}
