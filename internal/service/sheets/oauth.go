package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"log/slog"
)

// OAuthService: Google Sheets API OAuth2 인증을 처리하고 관리하는 서비스
type OAuthService struct {
	service         *sheets.Service
	config          *oauth2.Config
	token           *oauth2.Token
	tokenFile       string
	credentialsFile string
	logger          *slog.Logger
}

// NewOAuthService: 저장된 토큰이나 자격 증명을 로드하여 OAuth 서비스를 초기화한다.
func NewOAuthService(credentialsFile, tokenFile string, logger *slog.Logger) (*OAuthService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	svc := &OAuthService{
		config:          config,
		tokenFile:       tokenFile,
		credentialsFile: credentialsFile,
		logger:          logger,
	}

	token, err := loadToken(tokenFile)
	if err != nil {
		logger.Warn("no_existing_token_found", slog.String("file", tokenFile))
		return svc, nil
	}

	ctx := context.Background()
	client := svc.newClient(ctx, token)

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	logger.Info("sheets_oauth_initialized", slog.Bool("authenticated", true))

	svc.service = sheetsService
	svc.token = token
	return svc, nil
}

// Authorize: CLI 기반의 대화형 OAuth 인증 프로세스를 시작한다. (브라우저 인증 URL 표시 및 코드 입력 대기)
func (s *OAuthService) Authorize(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("service not initialized")
	}

	authURL := s.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	s.logger.Info("authorization_required")
	fmt.Println("\n=== Google Sheets API Authorization ===")
	fmt.Println("Go to the following link in your browser:")
	fmt.Println(authURL)
	fmt.Println("\nAfter authorization, enter the code here:")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("failed to read auth code: %w", err)
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("unable to retrieve token: %w", err)
	}

	if saveErr := saveToken(s.tokenFile, token); saveErr != nil {
		return fmt.Errorf("unable to save token: %w", saveErr)
	}

	s.token = token

	client := s.newClient(ctx, token)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("failed to create sheets service: %w", err)
	}

	s.service = sheetsService

	s.logger.Info("sheets_oauth_complete", slog.String("token_file", s.tokenFile))
	fmt.Println("\nAuthorization successful. Token saved.")

	return nil
}

// newClient: 갱신된 액세스 토큰이 재시작 후에도 살아남도록
// 토큰 파일에 되쓰는 TokenSource로 HTTP 클라이언트를 만든다.
func (s *OAuthService) newClient(ctx context.Context, token *oauth2.Token) *http.Client {
	return oauth2.NewClient(ctx, &persistingTokenSource{
		base: s.config.TokenSource(ctx, token),
		file: s.tokenFile,
		last: token,
	})
}

// persistingTokenSource: 토큰이 갱신될 때마다 파일에 저장한다.
type persistingTokenSource struct {
	base oauth2.TokenSource
	file string

	mu   sync.Mutex
	last *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last == nil || token.AccessToken != p.last.AccessToken {
		p.last = token
		if saveErr := saveToken(p.file, token); saveErr != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", saveErr)
		}
	}
	return token, nil
}

// IsAuthorized: 현재 유효한 인증 토큰이 있는지 확인한다.
func (s *OAuthService) IsAuthorized() bool {
	return s != nil && s.service != nil && s.token != nil
}

// GetService: 인증된 Sheets API 클라이언트를 반환한다.
func (s *OAuthService) GetService() *sheets.Service {
	if s == nil {
		return nil
	}
	return s.service
}

func loadToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err = json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
