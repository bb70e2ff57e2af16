/*
 * @Description: 统一配置管理 (ini 文件 + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2026-10-09 10:45:16
 * @LastEditTime: 2026-10-14 18:22:07
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 是默认配置文件的位置
const DefaultFilePath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 CATALOG_DATABASE_HOST
const EnvPrefix = "CATALOG"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyServerSeed, KeyServerIDSeed,
	KeyDBType, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName, KeyDBDebug,
	KeyRateLimitWritePerMinute, KeyRateLimitWriteBurst,
	KeyTaskPruneSchedule,
}

const (
	KeyServerPort              = "System.Port"
	KeyServerDebug             = "System.Debug"
	KeyServerSeed              = "System.Seed"
	KeyServerIDSeed            = "System.IDSeed"
	KeyDBType                  = "Database.Type"
	KeyDBHost                  = "Database.Host"
	KeyDBPort                  = "Database.Port"
	KeyDBUser                  = "Database.User"
	KeyDBPassword              = "Database.Password"
	KeyDBName                  = "Database.Name"
	KeyDBDebug                 = "Database.Debug"
	KeyRateLimitWritePerMinute = "RateLimit.WritePerMinute"
	KeyRateLimitWriteBurst     = "RateLimit.WriteBurst"
	KeyTaskPruneSchedule       = "Task.PruneSchedule"
)

// 未在配置文件和环境变量中出现时使用的默认值
var defaults = map[string]interface{}{
	KeyServerPort:              "8091",
	KeyServerDebug:             false,
	KeyServerSeed:              false,
	KeyDBType:                  "sqlite",
	KeyDBName:                  "catalog.db",
	KeyRateLimitWritePerMinute: 60,
	KeyRateLimitWriteBurst:     20,
	KeyTaskPruneSchedule:       "0 0 4 * * *",
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 从默认位置加载配置，文件不存在时自动创建默认配置文件
func NewConfig() (*Config, error) {
	return NewConfigFromFile(DefaultFilePath)
}

// NewConfigFromFile 手动加载配置，确保可靠性：
// 先读取 ini 文件作为基础值，再用环境变量逐项覆盖。
func NewConfigFromFile(filePath string) (*Config, error) {
	vp := viper.New()
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 空值视为未配置，保留内部默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	for _, key := range allKeys {
		envVarName := EnvVarName(key)
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

// EnvVarName 返回配置键对应的环境变量名，例如 Database.Host -> CATALOG_DATABASE_HOST
func EnvVarName(key string) string {
	envReplacer := strings.NewReplacer(".", "_")
	return fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// Set 仅用于测试或启动参数覆盖
func (c *Config) Set(key string, value interface{}) {
	c.vp.Set(key, value)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	// 默认使用 SQLite，开箱即用
	defaultConfig := `[System]
Port = 8091
Debug = false
# 首次启动且数据库为空时写入示例分类、标签和商品
Seed = false
# 公共ID种子，留空使用默认字母表；上线后请勿修改
IDSeed =

[Database]
Type = sqlite
Name = catalog.db
Debug = false

[RateLimit]
WritePerMinute = 60
WriteBurst = 20

[Task]
# 清理孤立的商品标签关联（秒 分 时 日 月 周）
PruneSchedule = 0 0 4 * * *
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
