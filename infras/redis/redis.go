package redis

import (
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"hotelops/config"
)

const pingTimeout = 5 * time.Second

// New connects to the primary redis node. It returns nil when redis is disabled and the
// cache layer then never hits.
func New(cfg *config.Config) *goRedis.Client {
	redisCfg := cfg.Cache.Redis
	if !redisCfg.Enable {
		log.Warn().Msg("redis disabled: report caching and rate limiting are off")

		return nil
	}

	addr := net.JoinHostPort(redisCfg.Primary.Host, redisCfg.Primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: redisCfg.Primary.Password,
		DB:       redisCfg.Primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("redis unreachable")
	}

	log.Info().Str("addr", addr).Int("db", redisCfg.Primary.DB).Msg("redis connected")

	return client
}
