// Command issuetoken signs a session token for operators and local testing.
//
//	JWT_SIGNING_KEY=secret issuetoken --discord-id 1234 --name admin --admin --ttl 1h
package main

import (
	"botlist-service/internal/identity"
	"botlist-service/internal/utils/runtime"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"log"
	"strings"
	"time"
)

const (
	jwtSigningKeyFlag = "jwt-signing-key"
	discordIdFlag     = "discord-id"
	nameFlag          = "name"
	adminFlag         = "admin"
	ttlFlag           = "ttl"
)

func main() {
	unsugared, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	logger := unsugared.Sugar()

	_ = godotenv.Load()

	pflag.String(jwtSigningKeyFlag, "", "HMAC key the service verifies session tokens with")
	pflag.String(discordIdFlag, "", "Discord id of the caller")
	pflag.String(nameFlag, "", "Display name of the caller")
	pflag.Bool(adminFlag, false, "Set the session level admin flag")
	pflag.Duration(ttlFlag, time.Hour, "Token lifetime")
	pflag.Parse()

	runtime.Must(viper.BindPFlags(pflag.CommandLine))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(jwtSigningKeyFlag))

	token, err := issue(viper.GetString(jwtSigningKeyFlag), viper.GetDuration(ttlFlag), identity.Caller{
		DiscordId: viper.GetString(discordIdFlag),
		Name:      viper.GetString(nameFlag),
		IsAdmin:   viper.GetBool(adminFlag),
	})
	if err != nil {
		logger.Fatalw("failed to issue token", "error", err)
	}

	fmt.Println(token)
}

func issue(key string, ttl time.Duration, caller identity.Caller) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%s is required", jwtSigningKeyFlag)
	}
	if caller.DiscordId == "" {
		return "", fmt.Errorf("%s is required", discordIdFlag)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%s must be positive", ttlFlag)
	}

	return identity.NewIssuer(key, ttl).Issue(caller)
}
