package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrNoSecret은 관리자 시크릿이 설정되지 않았을 때 발생합니다
var ErrNoSecret = errors.New("admin secret is not configured")

// Gate는 변경 요청마다 공유 관리자 시크릿을 검증하는 자격 증명 게이트입니다.
// 상태가 없으며 동시에 호출해도 안전합니다.
type Gate struct {
	secret []byte
}

// NewGate는 새로운 Gate를 생성합니다.
// 빈 시크릿은 거부합니다. 시크릿 없이 기동하면 모든 변경 요청이 실패해야 하므로
// 기동 단계에서 실패시킵니다.
func NewGate(secret string) (*Gate, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	return &Gate{secret: []byte(secret)}, nil
}

// Authorize는 제공된 시크릿을 설정된 시크릿과 비교합니다.
// 타이밍 공격을 피하기 위해 상수 시간 비교를 사용합니다.
func (g *Gate) Authorize(supplied string) bool {
	if supplied == "" {
		return false
	}

	return subtle.ConstantTimeCompare(g.secret, []byte(supplied)) == 1
}
