// Package errors: 스파이 봇 전체에서 사용되는 에러 타입들을 정의한다.
// 사이클 단위 에러 처리 정책(계속/중단)은 이 타입들로 구분된다.
package errors

import "fmt"

// FetchError: osu! API 호출 중 발생한 일시적 에러 (네트워크, 비정상 응답 등)
// 해당 플레이어만 건너뛰고 사이클은 계속 진행한다.
type FetchError struct {
	Player     string // 조회 중이던 플레이어
	StatusCode int    // HTTP 상태 코드 (0이면 네트워크 오류)
	Err        error  // 원인 에러
}

func (e FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error player=%s status=%d", e.Player, e.StatusCode)
	}
	return fmt.Sprintf("fetch error player=%s status=%d: %v", e.Player, e.StatusCode, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

// NewFetchError: 일시적 API 에러를 생성한다.
func NewFetchError(player string, statusCode int, cause error) *FetchError {
	return &FetchError{
		Player:     player,
		StatusCode: statusCode,
		Err:        cause,
	}
}

// MalformedRecordError: API 응답의 개별 레코드에 필수 필드가 없거나 파싱이 불가능한 경우.
// 해당 레코드만 버리고 사이클은 계속 진행한다.
type MalformedRecordError struct {
	Field string // 파싱에 실패한 필드
	Value string // 원본 값
	Err   error  // 원인 에러
}

func (e MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed record field=%s value=%q", e.Field, e.Value)
	}
	return fmt.Sprintf("malformed record field=%s value=%q: %v", e.Field, e.Value, e.Err)
}

func (e MalformedRecordError) Unwrap() error { return e.Err }

// NewMalformedRecordError: 레코드 파싱 에러를 생성한다.
func NewMalformedRecordError(field, value string, cause error) *MalformedRecordError {
	return &MalformedRecordError{
		Field: field,
		Value: value,
		Err:   cause,
	}
}

// StoreError: 스코어 저장소 작업 중 발생한 에러.
// 중복 제거 불변식이 깨질 수 있으므로 현재 사이클 전체를 중단한다.
type StoreError struct {
	Operation string // exists, insert, list 등
	Err       error  // 원인 에러
}

func (e StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store error operation=%s", e.Operation)
	}
	return fmt.Sprintf("store error operation=%s: %v", e.Operation, e.Err)
}

func (e StoreError) Unwrap() error { return e.Err }

// NewStoreError: 저장소 에러를 생성한다.
func NewStoreError(operation string, cause error) *StoreError {
	return &StoreError{
		Operation: operation,
		Err:       cause,
	}
}

// PublishError: 스프레드시트 반영 실패 에러.
// 재시도하지 않으며 다음 주기의 전체 덮어쓰기로 자연 복구된다.
type PublishError struct {
	Range string // 대상 시트 범위
	Err   error  // 원인 에러
}

func (e PublishError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("publish error range=%s", e.Range)
	}
	return fmt.Sprintf("publish error range=%s: %v", e.Range, e.Err)
}

func (e PublishError) Unwrap() error { return e.Err }

// NewPublishError: 스프레드시트 반영 에러를 생성한다.
func NewPublishError(rangeName string, cause error) *PublishError {
	return &PublishError{
		Range: rangeName,
		Err:   cause,
	}
}

// NotifyError: 디스코드 웹훅 발송 실패 에러. 점수 저장에는 영향을 주지 않는다.
type NotifyError struct {
	StatusCode int
	Err        error
}

func (e NotifyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("notify error status=%d", e.StatusCode)
	}
	return fmt.Sprintf("notify error status=%d: %v", e.StatusCode, e.Err)
}

func (e NotifyError) Unwrap() error { return e.Err }

// NewNotifyError: 알림 발송 에러를 생성한다.
func NewNotifyError(statusCode int, cause error) *NotifyError {
	return &NotifyError{
		StatusCode: statusCode,
		Err:        cause,
	}
}
