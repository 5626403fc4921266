package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-QuizBot/internal/domain"
	"github.com/m04kA/SMC-QuizBot/pkg/metrics"
)

const methodGetUpdates = "getUpdates"

// Client клиент Bot API для получения обновлений через long polling
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента Bot API
// timeout - клиентский таймаут HTTP, должен быть больше long polling таймаута
func NewClient(apiURL, token string, timeout time.Duration, logger Logger, metrics Metrics) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// APIURL возвращает базовый URL Bot API
func (c *Client) APIURL() string {
	return c.apiURL
}

// Token возвращает токен бота
func (c *Client) Token() string {
	return c.token
}

// GetUpdates получает пачку обновлений начиная с offset (включительно)
// Любая ошибка сводится к пустому результату, повторов нет
func (c *Client) GetUpdates(ctx context.Context, offset int64, limit, timeout int) []domain.Update {
	resp, err := c.getUpdates(ctx, offset, limit, timeout)
	if err != nil {
		// Отмена контекста - штатная остановка опроса, а не сбой транспорта
		if ctx.Err() != nil {
			c.logger.Info("getUpdates canceled: %v", ctx.Err())
			return []domain.Update{}
		}
		c.logger.Error("getUpdates failed: %v", err)
		c.incFailure(metrics.ReasonTransport)
		return []domain.Update{}
	}

	if resp == nil {
		c.logger.Warn("getUpdates null result")
		c.incFailure(metrics.ReasonNullBody)
		return []domain.Update{}
	}

	if !resp.Ok {
		c.logger.Warn("getUpdates error: %d - %s", resp.ErrorCode, resp.Description)
		c.incFailure(metrics.ReasonAPIError)
		return []domain.Update{}
	}

	if isNull(resp.Result) {
		return []domain.Update{}
	}

	var updates []domain.Update
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		c.logger.Error("getUpdates failed: %v", fmt.Errorf("%w: failed to decode result: %v", ErrInvalidResponse, err))
		c.incFailure(metrics.ReasonTransport)
		return []domain.Update{}
	}

	return updates
}

// getUpdates выполняет HTTP запрос и декодирует тело ответа
// Возвращает nil без ошибки, если тело пустое или равно null
func (c *Client) getUpdates(ctx context.Context, offset int64, limit, timeout int) (*tgbotapi.APIResponse, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(offset, 10))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("timeout", strconv.Itoa(timeout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL(methodGetUpdates)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Статус-код не проверяем: Bot API возвращает тело с ok=false и для 4xx/5xx
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	if isNull(body) {
		return nil, nil
	}

	var apiResp tgbotapi.APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response (status %d): %v", ErrInvalidResponse, resp.StatusCode, err)
	}

	return &apiResp, nil
}

// methodURL формирует URL метода: {apiURL}{token}/{method}
func (c *Client) methodURL(method string) string {
	return c.apiURL + c.token + "/" + method
}

func (c *Client) incFailure(reason string) {
	if c.metrics != nil {
		c.metrics.IncFetchFailure(reason)
	}
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
