package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	url2 "net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SMALLTALK_ADDR":
		return "localhost:0", true
	case "SMALLTALK_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

type testServer struct {
	url    string
	client http.Client
}

// startTestServer starts the test server, waits for it to be ready, and returns a handle for testing.
func startTestServer(t *testing.T, w io.Writer, lookupEnv func(string) (string, bool)) testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return testServer{}
	case addr := <-addrCh:
		// Swap 127.0.0.1 with localhost so the cookie jar accepts the cookies.
		port := strings.Split(addr, ":")[1]
		serverURL := fmt.Sprintf("http://localhost:%s", port)
		if err := waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)); err != nil {
			require.NoError(t, err)
		}
		jar, err := newUnsafeCookieJar()
		require.NoError(t, err)
		return testServer{
			url:    serverURL,
			client: http.Client{Jar: jar},
		}
	}
}

// Get fetches a URL and returns the response.
func (s *testServer) Get(t *testing.T, urlPath string) *http.Response {
	t.Helper()
	resp, err := s.client.Get(s.url + urlPath)
	require.NoError(t, err)
	return resp
}

// GetDoc fetches a URL and returns a goquery document.
func (s *testServer) GetDoc(t *testing.T, urlPath string) *goquery.Document {
	t.Helper()
	resp := s.Get(t, urlPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer func() {
		err := resp.Body.Close()
		require.NoError(t, err)
	}()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

// SubmitForm finds the form with the given action in doc, overlays the given
// values on top of its hidden inputs, and posts it. The response document is
// returned after following redirects.
func (s *testServer) SubmitForm(t *testing.T, doc *goquery.Document, action string, values url2.Values) *goquery.Document {
	t.Helper()
	html, err := doc.Html()
	require.NoError(t, err)

	formSelector := fmt.Sprintf("form[action='%s']", action)
	form := doc.Find(formSelector)
	require.Equal(t, 1, form.Length(), "form %s not found in document:\n%s", formSelector, html)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	require.True(t, ok, "csrf_token not found in form %s", formSelector)

	formData := url2.Values{}
	formData.Add("csrf_token", csrfToken)
	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		if name, exists := input.Attr("name"); exists && name != "csrf_token" {
			value, _ := input.Attr("value")
			formData.Add(name, value)
		}
	})
	for key, vals := range values {
		formData[key] = vals
	}

	resp, err := s.client.Post(s.url+action, "application/x-www-form-urlencoded", strings.NewReader(formData.Encode()))
	require.NoError(t, err)
	// Validation failures re-render the form with 422, which is still a
	// parseable document.
	require.Contains(t, []int{http.StatusOK, http.StatusUnprocessableEntity}, resp.StatusCode)
	defer func(body io.ReadCloser) {
		err = body.Close()
		assert.NoError(t, err)
	}(resp.Body)

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

// Register creates an account through the signup form and returns the
// resulting page. The cookie jar keeps the user signed in afterwards.
func (s *testServer) Register(t *testing.T, username, password string) *goquery.Document {
	t.Helper()
	doc := s.GetDoc(t, "/signup")
	return s.SubmitForm(t, doc, "/signup", url2.Values{
		"username": {username},
		"password": {password},
	})
}

// Login signs in through the login form and returns the resulting page.
func (s *testServer) Login(t *testing.T, username, password string) *goquery.Document {
	t.Helper()
	doc := s.GetDoc(t, "/login")
	return s.SubmitForm(t, doc, "/login", url2.Values{
		"username": {username},
		"password": {password},
	})
}
