// Package api はUEプロファイルAPIのRESTクライアントを提供する。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/logging"
)

// Client はUEプロファイルAPIクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewClient は新しいUEプロファイルAPIクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(config.APIRequestTimeout)

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					logging.WithEventID(logging.EventCBOpen),
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					logging.WithEventID(logging.EventCBHalfOpen),
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					logging.WithEventID(logging.EventCBClose),
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.ProfileAPIURL, "/"),
	}
}

// Login はユーザー名とパスワードでログインし、セッションを返す。
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := c.do(ctx, nil, http.MethodPost, PathLogin, credentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: token missing", ErrInvalidResponse)
	}
	return &Session{Username: username, Token: resp.Token}, nil
}

// Logout はセッションのトークンを失効させる。
func (c *Client) Logout(ctx context.Context, sess *Session) error {
	if !sess.Valid() {
		return ErrNotAuthenticated
	}
	_, err := c.do(ctx, sess, http.MethodPost, PathLogout, nil)
	return err
}

// Register は新しいアカウントを作成する。
func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.do(ctx, nil, http.MethodPost, PathRegister, credentialsRequest{
		Username: username,
		Password: password,
	})
	return err
}

// ListProfiles はUEプロファイルの一覧を取得する。
func (c *Client) ListProfiles(ctx context.Context, sess *Session) ([]record.Document, error) {
	if !sess.Valid() {
		return nil, ErrNotAuthenticated
	}
	body, err := c.do(ctx, sess, http.MethodGet, PathProfiles, nil)
	if err != nil {
		return nil, err
	}

	var docs []record.Document
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	if docs == nil {
		docs = []record.Document{}
	}
	return docs, nil
}

// GetProfile は指定されたSUPIのUEプロファイルを取得する。
func (c *Client) GetProfile(ctx context.Context, sess *Session, supi string) (record.Document, error) {
	if !sess.Valid() {
		return nil, ErrNotAuthenticated
	}
	body, err := c.do(ctx, sess, http.MethodGet, profilePath(supi), nil)
	if err != nil {
		return nil, err
	}
	doc, err := record.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return doc, nil
}

// CreateProfile は新しいUEプロファイルを作成する。
// サービスは配列を受け付けるため、1件の配列として送信する。
func (c *Client) CreateProfile(ctx context.Context, sess *Session, doc record.Document) error {
	if !sess.Valid() {
		return ErrNotAuthenticated
	}
	_, err := c.do(ctx, sess, http.MethodPost, PathProfiles, []record.Document{doc})
	return err
}

// UpdateProfile は既存のUEプロファイルを更新する。
// supi等の変更不可キーはボディから除外する。
func (c *Client) UpdateProfile(ctx context.Context, sess *Session, supi string, doc record.Document) error {
	if !sess.Valid() {
		return ErrNotAuthenticated
	}
	_, err := c.do(ctx, sess, http.MethodPut, profilePath(supi), UpdateBody(doc))
	return err
}

// DeleteProfile はUEプロファイルを削除する。
func (c *Client) DeleteProfile(ctx context.Context, sess *Session, supi string) error {
	if !sess.Valid() {
		return ErrNotAuthenticated
	}
	_, err := c.do(ctx, sess, http.MethodDelete, profilePath(supi), nil)
	return err
}

// GenerateProfiles はサーバー側でn件のUEプロファイルを生成する。
func (c *Client) GenerateProfiles(ctx context.Context, sess *Session, n int) (*GenerateResponse, error) {
	if !sess.Valid() {
		return nil, ErrNotAuthenticated
	}
	body, err := c.do(ctx, sess, http.MethodPost, PathGenerate, generateRequest{NumUEs: n})
	if err != nil {
		return nil, err
	}

	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// UpdateBody は更新リクエスト用にdocから変更不可キーを除いたコピーを返す。
func UpdateBody(doc record.Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, k := range updateExcludedKeys {
		delete(out, k)
	}
	return out
}

// do はリクエストを実行し、成功時のレスポンスボディを返す。
// 接続エラーと5xxはCircuit Breakerの失敗として数え、4xxは数えない。
func (c *Client) do(ctx context.Context, sess *Session, method, path string, body any) ([]byte, error) {
	traceID := uuid.NewString()
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		req := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID)
		if sess != nil {
			req.SetAuthToken(sess.Token)
		}
		if body != nil {
			req.SetHeader(HeaderContentType, ContentTypeJSON).SetBody(body)
		}

		resp, err := req.Execute(method, c.baseURL+path)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx
		if statusCode >= 500 {
			apiErr := parseAPIError(statusCode, resp.Body())
			logAPIError(traceID, method, path, apiErr, latencyMs)
			return nil, apiErr
		}

		// CB失敗判定対象外のエラー: 4xx
		if statusCode >= 300 {
			apiErr := parseAPIError(statusCode, resp.Body())
			logAPIError(traceID, method, path, apiErr, latencyMs)
			return apiErr, nil
		}

		slog.Debug("profile api success",
			logging.WithTraceID(traceID),
			"method", method,
			"path", path,
			logging.WithHTTPStatus(statusCode),
			logging.WithLatency(latencyMs),
		)
		return resp.Body(), nil
	})

	if err != nil {
		// Circuit BreakerがOpen状態
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	// CB対象外のAPIErrorの場合
	if apiErr, ok := result.(*APIError); ok {
		return nil, apiErr
	}

	respBody, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return respBody, nil
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
// RFC 7807形式と {"error": "..."} 形式の両方を受け付ける。
func parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		msg := details.Detail
		if msg == "" {
			msg = details.Title
		}
		return &APIError{
			StatusCode: statusCode,
			Message:    msg,
			Details:    &details,
		}
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    eb.Error,
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}

func logAPIError(traceID, method, path string, apiErr *APIError, latencyMs int64) {
	slog.Error("profile api error",
		logging.WithEventID(logging.EventAPIError),
		logging.WithTraceID(traceID),
		"method", method,
		"path", path,
		logging.WithError(apiErr),
		logging.WithHTTPStatus(apiErr.StatusCode),
		logging.WithLatency(latencyMs),
	)
}

func profilePath(supi string) string {
	return PathProfiles + "/" + url.PathEscape(supi)
}
