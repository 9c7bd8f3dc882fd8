package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var reportedHeaders = []string{
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Credentials",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Headers",
	"Vary",
	"X-Request-ID",
}

func main() {
	var (
		baseURL   = flag.String("url", "", "server base url (defaults to http://localhost:<PORT or 5000>)")
		path      = flag.String("path", "/health", "request path, including any query string")
		origin    = flag.String("origin", "", "Origin header to send; empty sends none")
		method    = flag.String("method", http.MethodGet, "request method (ignored with -preflight)")
		preflight = flag.Bool("preflight", false, "send an OPTIONS preflight instead of the request itself")
		body      = flag.String("body", "", "request body; sent as application/json")
	)
	flag.Parse()

	if *baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		*baseURL = "http://localhost:" + port
	}
	if !strings.HasPrefix(*path, "/") {
		fmt.Fprintln(os.Stderr, "-path must start with /")
		os.Exit(2)
	}

	m := strings.ToUpper(*method)
	if *preflight {
		m = http.MethodOptions
	}

	var rdr io.Reader
	if *body != "" && !*preflight {
		rdr = strings.NewReader(*body)
	}

	req, err := http.NewRequest(m, strings.TrimRight(*baseURL, "/")+*path, rdr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(2)
	}
	if *origin != "" {
		req.Header.Set("Origin", *origin)
	}
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if *preflight {
		req.Header.Set("Access-Control-Request-Method", strings.ToUpper(*method))
	}

	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", m, req.URL, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s %s\nstatus=%d\n", m, req.URL, resp.StatusCode)
	for _, h := range reportedHeaders {
		if v := resp.Header.Values(h); len(v) > 0 {
			fmt.Printf("%s: %s\n", h, strings.Join(v, ", "))
		}
	}
	if len(out) > 0 {
		fmt.Printf("\n%s\n", strings.TrimSpace(string(out)))
	}
}
