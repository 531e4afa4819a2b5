// 대화형 OAuth 인증 도구. 봇을 돌리기 전에 한 번 실행해 token.json을 만든다.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aticie/spy-bot/internal/config"
	"github.com/aticie/spy-bot/internal/service/sheets"
	"github.com/aticie/spy-bot/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.NewLoggerWithLevel(cfg.Logging.Level)

	oauthService, err := sheets.NewOAuthService(cfg.Sheets.CredentialsFile, cfg.Sheets.TokenFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OAuth service: %v\n", err)
		os.Exit(1)
	}

	if oauthService.IsAuthorized() {
		fmt.Println("Already authorized. Delete the token file to re-authorize.")
		return
	}

	if err := oauthService.Authorize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Authorization failed: %v\n", err)
		os.Exit(1)
	}
}
