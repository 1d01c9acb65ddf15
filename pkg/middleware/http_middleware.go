package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"flame/pkg/redis"
)

// HTTPSessionMiddleware net/http 기반 라우터용 세션 검사
func HTTPSessionMiddleware(redisClient *redis.RedisClient) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 인증이 필요 없는 경로 처리
			if strings.Contains(r.URL.Path, "register") || strings.Contains(r.URL.Path, "login") {
				next.ServeHTTP(w, r)
				return
			}

			// 쿠키에서 세션 ID 추출
			cookie, err := r.Cookie("session_id")
			if err != nil {
				http.Error(w, "Unauthorized: No session ID provided", http.StatusUnauthorized)
				return
			}

			// Redis에서 세션 ID로 사용자 정보 조회
			userID, err := redisClient.GetUserBySessionID(cookie.Value)
			if err != nil {
				http.Error(w, "Unauthorized: Invalid session ID", http.StatusUnauthorized)
				return
			}

			// 사용자 ID를 요청의 헤더에 추가
			r.Header.Set("X-User-ID", strconv.Itoa(userID))

			next.ServeHTTP(w, r)
		})
	}
}
