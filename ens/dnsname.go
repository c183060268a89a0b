package ens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

var ErrMalformedName = errors.New("malformed DNS-encoded name")

// DecodeDNSName decodes a DNS wire-format name into dot-separated form.
// Labels are taken as raw UTF-8; bytes after the terminating zero label are
// ignored.
func DecodeDNSName(encoded []byte) (string, error) {
	var labels []string
	idx := 0
	for {
		if idx >= len(encoded) {
			return "", fmt.Errorf("%w: missing root label", ErrMalformedName)
		}

		n := int(encoded[idx])
		if n == 0 {
			break
		}

		end := idx + 1 + n
		if end > len(encoded) {
			return "", fmt.Errorf("%w: label at offset %d overruns input", ErrMalformedName, idx)
		}

		label := string(encoded[idx+1 : end])
		if strings.Contains(label, ".") {
			return "", fmt.Errorf("%w: label %q contains a dot", ErrMalformedName, label)
		}

		labels = append(labels, label)
		idx = end
	}

	return strings.Join(labels, "."), nil
}

// EncodeDNSName encodes a dot-separated name into DNS wire format.
func EncodeDNSName(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []byte{0}, nil
	}

	buf := make([]byte, len(name)+2)
	off, err := dns.PackDomainName(dns.Fqdn(name), buf, 0, nil, false)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %q: %w", name, err)
	}

	return buf[:off], nil
}
