package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Rewards RewardsConfig `toml:"rewards"`
	Levels  LevelsConfig  `toml:"levels"`
}

type RewardsConfig struct {
	BattleVictoryXP    int64 `toml:"battle_victory_xp"`
	BattleVictoryCoins int64 `toml:"battle_victory_coins"`
	AwardCardXP        int64 `toml:"award_card_xp"`
	PackClaimXP        int64 `toml:"pack_claim_xp"`
	PackClaimCoins     int64 `toml:"pack_claim_coins"`
	PackClaimDiamonds  int64 `toml:"pack_claim_diamonds"`
}

type LevelsConfig struct {
	BaseXP int64 `toml:"base_xp"`
	Growth int64 `toml:"growth"`
}

func Default() *Config {
	return &Config{
		Rewards: RewardsConfig{
			BattleVictoryXP:    50,
			BattleVictoryCoins: 25,
			AwardCardXP:        10,
			PackClaimXP:        100,
			PackClaimCoins:     150,
			PackClaimDiamonds:  5,
		},
		Levels: LevelsConfig{
			BaseXP: 100,
			Growth: 50,
		},
	}
}

// Load читает config.toml; при отсутствии файла возвращает значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.toml"
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
