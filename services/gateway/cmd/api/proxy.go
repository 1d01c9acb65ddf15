package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// API를 프록시해주는 역할
func (app *Config) proxyService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Proxy Request URL: %s", r.URL)

		// 요청 경로에서 첫 번째 경로 요소를 추출
		firstPath, trimmedPath := extractFirstPath(r.URL.Path)
		if firstPath == "" {
			http.Error(w, "Unknown service", http.StatusNotFound)
			return
		}

		// 첫 번째 경로 요소에 따라 targetURL 설정
		baseURL := "http://flame-" + firstPath
		targetURL := baseURL + trimmedPath

		// 쿼리 스트링이 존재하면 targetURL에 추가
		if r.URL.RawQuery != "" {
			targetURL = targetURL + "?" + r.URL.RawQuery
		}

		// 송신할 요청 생성
		req, err := http.NewRequest(r.Method, targetURL, r.Body)
		if err != nil {
			log.Printf("method: %s, url: %s, err: %s", r.Method, targetURL, err.Error())
			http.Error(w, "Failed to create request", http.StatusInternalServerError)
			return
		}

		// 원본 요청의 헤더를 모두 복사
		for name, values := range r.Header {
			for _, value := range values {
				req.Header.Add(name, value)
			}
		}

		// 요청을 송신하고 응답을 받음
		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			http.Error(w, "Failed to send request", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		// 응답 헤더 설정
		for name, values := range resp.Header {
			for _, value := range values {
				w.Header().Add(name, value)
			}
		}

		// 상태 코드 설정
		w.WriteHeader(resp.StatusCode)

		// 응답 본문을 클라이언트에게 전달
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Printf("Failed to copy response body: %v", err)
		}
	}
}

// 웹소켓 업그레이드를 포함한 notify 서비스 프록시
func (app *Config) notifyProxy() http.Handler {
	target := &url.URL{Scheme: "http", Host: "flame-notify"}
	return httputil.NewSingleHostReverseProxy(target)
}

// 첫 번째 경로 요소를 추출하고 나머지 경로를 반환하는 함수
func extractFirstPath(path string) (string, string) {
	parts := strings.SplitN(path, "/", 3)

	if len(parts) > 1 {
		firstPath := parts[1]
		if len(parts) > 2 {
			return firstPath, "/" + parts[2]
		}
		return firstPath, "/"
	}

	return "", "/"
}
