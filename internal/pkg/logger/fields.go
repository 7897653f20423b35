package logger

import (
	"time"

	"go.uber.org/zap"
)

// 일관된 로그 필드를 위한 헬퍼 함수들

// RequestID는 요청 ID 필드를 반환합니다
func RequestID(id string) zap.Field {
	return zap.String("request_id", id)
}

// TraceID는 trace ID 필드를 반환합니다
func TraceID(id string) zap.Field {
	return zap.String("trace_id", id)
}

// SpanID는 span ID 필드를 반환합니다
func SpanID(id string) zap.Field {
	return zap.String("span_id", id)
}

// MovieID는 영화 ID 필드를 반환합니다
func MovieID(id int64) zap.Field {
	return zap.Int64("movie_id", id)
}

// Revision은 카탈로그 문서 리비전 필드를 반환합니다
func Revision(rev int64) zap.Field {
	return zap.Int64("revision", rev)
}

// Operation은 작업명 필드를 반환합니다
func Operation(op string) zap.Field {
	return zap.String("operation", op)
}

// Duration은 작업 시간 필드를 반환합니다
func Duration(d time.Duration) zap.Field {
	return zap.Duration("duration", d)
}

// DurationMs는 작업 시간을 밀리초로 반환합니다
func DurationMs(d time.Duration) zap.Field {
	return zap.Float64("duration_ms", float64(d.Milliseconds()))
}

// HTTPMethod는 HTTP 메서드 필드를 반환합니다
func HTTPMethod(method string) zap.Field {
	return zap.String("http_method", method)
}

// HTTPPath는 HTTP 경로 필드를 반환합니다
func HTTPPath(path string) zap.Field {
	return zap.String("http_path", path)
}

// HTTPStatus는 HTTP 상태 코드 필드를 반환합니다
func HTTPStatus(status int) zap.Field {
	return zap.Int("http_status", status)
}

// RemoteAddr는 원격 주소 필드를 반환합니다
func RemoteAddr(addr string) zap.Field {
	return zap.String("remote_addr", addr)
}

// ErrorCode는 에러 코드 필드를 반환합니다
func ErrorCode(code string) zap.Field {
	return zap.String("error_code", code)
}

// Field는 임의의 키/값 필드를 반환합니다
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}
