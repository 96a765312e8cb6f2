package downloader

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
)

// Kind is the classification of a download failure.
type Kind int

const (
	// KindNone means there was no failure.
	KindNone Kind = iota
	// KindInvalidURL covers URLs without a recognizable scheme or host.
	KindInvalidURL
	// KindUnreachable covers transport failures: DNS, refused or reset
	// connections, transport timeouts and failed TLS handshakes.
	KindUnreachable
	// KindFatal is everything else.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidURL:
		return "invalid_url"
	case KindUnreachable:
		return "unreachable"
	default:
		return "fatal"
	}
}

// Recoverable reports whether a batch may skip the URL and carry on.
func (k Kind) Recoverable() bool {
	return k == KindInvalidURL || k == KindUnreachable
}

// Classify maps a download error onto a Kind. Only invalid URLs and
// unreachable hosts are recoverable; a done ctx always makes the error fatal.
func Classify(ctx context.Context, err error) Kind {
	if err == nil {
		return KindNone
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return KindFatal
	}
	if errors.Is(err, ErrInvalidURL) {
		return KindInvalidURL
	}
	if errors.Is(err, ErrUnparsableURL) || errors.Is(err, ErrUnexpectedStatus) || errors.Is(err, ErrReadBody) {
		return KindFatal
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindUnreachable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindUnreachable
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindUnreachable
	}
	if isHandshakeError(err) {
		return KindUnreachable
	}
	return KindFatal
}

// isHandshakeError reports whether err comes from a TLS handshake that failed
// before any response was read.
func isHandshakeError(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		headerErr    tls.RecordHeaderError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &headerErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
