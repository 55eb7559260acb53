package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusBadRequest},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeInvalidSite, http.StatusBadRequest},
		{ErrorCodeEmptyUpstream, http.StatusBadGateway},
		{ErrorCodeUpstreamValidation, http.StatusBadGateway},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(9999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestRPCCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, 5},
		{ErrorCodeInvalidArgument, 3},
		{ErrorCodeValidation, 3},
		{ErrorCodeJSON, 3},
		{ErrorCodeInvalidSite, 3},
		{ErrorCodeUnavailable, 14},
		{ErrorCodeEmptyUpstream, 13},
		{ErrorCodeUpstreamValidation, 13},
		{ErrorCodeDB, 13},
		{ErrorCodeUnknown, 13},
	}
	for _, c := range cases {
		if got := RPCCode(c.code); got != c.want {
			t.Fatalf("RPCCode(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrappingAndRoot(t *testing.T) {
	cause := stderrs.New("dial tcp: connection refused")
	err := Wrap(cause, ErrorCodeUnavailable, "upstream request")

	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("IsCode = false, want true")
	}
	if Root(err) != cause {
		t.Fatalf("Root did not reach the cause")
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("errors.Is should see through the wrap")
	}
	if got := err.Error(); got != "upstream request: dial tcp: connection refused" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestCodeOfDefaultsToUnknown(t *testing.T) {
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(plain) should be Unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(nil) should be Unknown")
	}
}

func TestWithFieldAndOp(t *testing.T) {
	base := Newf(ErrorCodeValidation, "size out of range")
	withField := WithField(base, "size")

	e, ok := As(withField)
	if !ok || e.Field() != "size" {
		t.Fatalf("WithField failed: %+v", e)
	}
	// copy-on-write: original untouched
	if orig, _ := As(base); orig.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}

	withOp := WithOp(withField, "lots.search")
	if e2, _ := As(withOp); e2.Op() != "lots.search" {
		t.Fatalf("WithOp failed: %+v", e2)
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatalf("WithField should pass through foreign errors")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(WithField(InvalidSitef("unknown auction site %q", "manheim"), "site"))
	if w.Code != ErrorCodeInvalidSite || w.Field != "site" {
		t.Fatalf("WireFrom = %+v", w)
	}

	w2 := WireFrom(stderrs.New("boom"))
	if w2.Code != ErrorCodeUnknown || w2.Message != "boom" {
		t.Fatalf("WireFrom foreign = %+v", w2)
	}

	if WireFrom(nil) != (Wire{}) {
		t.Fatalf("WireFrom(nil) should be zero")
	}
}

func TestSugarConstructors(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("lot %d", 42), ErrorCodeNotFound},
		{InvalidArgf("bad %s", "vin"), ErrorCodeInvalidArgument},
		{InvalidSitef("bad site"), ErrorCodeInvalidSite},
		{EmptyUpstreamf("null body"), ErrorCodeEmptyUpstream},
		{UpstreamValidationf("not an object"), ErrorCodeUpstreamValidation},
		{Unavailablef("timeout"), ErrorCodeUnavailable},
		{DBf("query failed"), ErrorCodeDB},
		{JSONErrf("bad json"), ErrorCodeJSON},
		{PanicErrf("recovered"), ErrorCodePanic},
		{Internalf("oops"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.want) {
			t.Fatalf("sugar code = %v, want %v (%v)", CodeOf(c.err), c.want, c.err)
		}
	}

	// ErrNotFound sentinel behavior
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if !IsCode(WrapIf(stderrs.New("boom"), ErrorCodeDB, "x"), ErrorCodeDB) {
		t.Fatalf("WrapIf should wrap non-nil")
	}
}

func TestHTTPBundle(t *testing.T) {
	status, wire := HTTP(EmptyUpstreamf("provider returned null"))
	if status != http.StatusBadGateway || wire.Code != ErrorCodeEmptyUpstream {
		t.Fatalf("HTTP() = %d %+v", status, wire)
	}
	if s, w := HTTP(nil); s != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", s, w)
	}
}
