package explorer

import (
	"errors"
	"fmt"
)

type NoticeKind string

const (
	NoticeNotFound        NoticeKind = "not_found"
	NoticeDrawRegionFirst NoticeKind = "draw_region_first"
	NoticeNoData          NoticeKind = "no_data"
	NoticeQueryFailed     NoticeKind = "query_failed"
)

// Notice is a message that the map page should show to the operator.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// NoticeError is a failed operation that has already been reported to the
// operator as a notice.
type NoticeError struct {
	Notice Notice
	Err    error
}

func (ne *NoticeError) Error() string {
	return fmt.Sprintf("%s: %s", ne.Notice.Kind, ne.Err.Error())
}

func (ne *NoticeError) Unwrap() error {
	return ne.Err
}

func NoticeFrom(err error) (Notice, bool) {
	var ne *NoticeError
	if errors.As(err, &ne) {
		return ne.Notice, true
	}
	return Notice{}, false
}
