package sums

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"io"
)

// Digest is a content fingerprint for accidental-edit detection. It is not
// used for anything security related.
type Digest [md5.Size]byte

func Sum(content []byte) Digest {
	return md5.Sum(content)
}

func SumString(content string) Digest {
	return md5.Sum([]byte(content))
}

func SumLines(lines []string) Digest {
	h := md5.New()
	for _, line := range lines {
		io.WriteString(h, line)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// Hex is the legacy 32-character rendering.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Short is the current 10-character base64 rendering.
func (d Digest) Short() string {
	return base64.StdEncoding.EncodeToString(d[:])[:10]
}
