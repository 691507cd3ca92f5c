package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const requestTimeout = 30 * time.Second

type commandContext struct {
	serverFlag *string
	tokenFlag  *string
	client     *fasthttp.Client
}

func newCommandContext(serverFlag, tokenFlag *string) *commandContext {
	return &commandContext{
		serverFlag: serverFlag,
		tokenFlag:  tokenFlag,
		client: &fasthttp.Client{
			Name:         "lyractl",
			ReadTimeout:  requestTimeout,
			WriteTimeout: requestTimeout,
		},
	}
}

// envelope mirrors the server's JSON response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (c *commandContext) baseURL() string {
	server := defaultServer
	if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
		server = strings.TrimSpace(*c.serverFlag)
	}
	return strings.TrimRight(server, "/")
}

func (c *commandContext) token() (string, error) {
	if c.tokenFlag == nil || strings.TrimSpace(*c.tokenFlag) == "" {
		return "", errors.New("no access token: pass --token or set LYRA_TOKEN")
	}
	return strings.TrimSpace(*c.tokenFlag), nil
}

// call sends an authenticated request to path and decodes the envelope's
// data into out.
func (c *commandContext) call(method, path string, body any, out any) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL() + "/api/v1" + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.client.DoTimeout(req, resp, requestTimeout); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: unexpected response (status %d)", method, path, resp.StatusCode())
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fasthttp.StatusMessage(resp.StatusCode())
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
