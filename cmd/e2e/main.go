package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var verbose bool
var baseURL *url.URL

// scenario 封装一次端到端巡检过程中共享的资源。
type scenario struct {
	client *http.Client
	prefix string
}

func banner(title string) {
	log.Printf("\n=== %s ===", title)
}

func step(format string, args ...interface{}) {
	log.Printf(" • "+format, args...)
}

func main() {
	var (
		base    string
		prefix  string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://127.0.0.1:8080", "Base URL of the funcapp server")
	flag.StringVar(&prefix, "prefix", "", "Route prefix of the function endpoints (e.g. /api)")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP timeout for requests")
	flag.BoolVar(&verbose, "v", true, "Verbose logging")
	flag.Parse()

	var err error
	baseURL, err = url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		log.Fatalf("parse base url: %v", err)
	}

	sc := &scenario{client: &http.Client{Timeout: timeout}, prefix: strings.TrimRight(prefix, "/")}
	sc.run()
}

func (s *scenario) run() {
	must := func(err error, msg string) {
		if err != nil {
			log.Fatalf("%s: %v", msg, err)
		}
	}

	log.Printf("E2E start -> %s", baseURL)

	banner("Health Checks")
	step("Probe /healthz")
	must(s.expect("GET", "/healthz", "", 200, ""), "healthz")
	step("Probe /metrics (best effort)")
	_ = s.expect("GET", "/metrics", "", 200, "")

	banner("Queue Output")
	name := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	want, _ := json.Marshal(map[string]string{"name": name})
	step("name via query string")
	must(s.expect("GET", s.prefix+"/queueoutput?name="+url.QueryEscape(name), "", 200, string(want)), "queue query")
	step("name via JSON body")
	must(s.expect("POST", s.prefix+"/queueoutput", string(want), 200, string(want)), "queue body")
	step("missing name is rejected")
	must(s.expect("POST", s.prefix+"/queueoutput", `{}`, 400, ""), "queue missing")
	step("malformed body is treated as missing")
	must(s.expect("POST", s.prefix+"/queueoutput", `{"name":`, 400, ""), "queue malformed")

	banner("SQL Output")
	step("full record")
	must(s.expect("POST", s.prefix+"/addtodo", `{"order":1,"title":"e2e","url":"https://example.com","completed":true}`, 201, ""), "addtodo full")
	step("empty object")
	must(s.expect("POST", s.prefix+"/addtodo", `{}`, 201, ""), "addtodo empty")
	step("non-JSON body is rejected with detail")
	must(s.expect("POST", s.prefix+"/addtodo", `not json`, 400, "Error:"), "addtodo invalid")

	log.Printf("E2E OK")
}

// expect 发送请求并校验状态码；contains 非空时同时校验响应体包含该片段。
func (s *scenario) expect(method, path, body string, want int, contains string) error {
	u := baseURL.ResolveReference(&url.URL{Path: pathOnly(path), RawQuery: queryOnly(path)})
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, u.String(), rd)
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != want {
		return fmt.Errorf("%s %s: status %d want %d body: %s", method, u, resp.StatusCode, want, string(b))
	}
	if contains != "" && !strings.Contains(string(b), contains) {
		return fmt.Errorf("%s %s: body %q does not contain %q", method, u, string(b), contains)
	}
	if verbose {
		log.Printf("%s %s -> %d\n响应体: %s", method, u, resp.StatusCode, safeTrunc(string(b), 1200))
	}
	return nil
}

func pathOnly(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[:i]
	}
	return p
}

func queryOnly(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[i+1:]
	}
	return ""
}

func safeTrunc(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
