package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/ghosthustlers/pkg/config"
)

// 用法: go run ./tools [path/to/gameplay.yaml]
func main() {
	path := config.DefaultGameplayConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 先严格解码，拼错的键会被默认值悄悄掩盖
	var strict config.GameplayConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&strict); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确，没有未知字段\n")

	cfg, err := config.ParseGameplayConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 配置校验通过\n")

	if *cfg == *config.DefaultGameplayConfig() {
		fmt.Printf("✅ 与内置默认值一致\n")
	} else {
		fmt.Printf("⚠️  与内置默认值不同（自定义调参）\n")
	}
}
