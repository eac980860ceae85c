package workflow

import "github.com/hashcloud-io/hashcloud/digest"

// validDigest derives a well-formed digest from a seed string.
func validDigest(seed string) string {
	return digest.Bytes([]byte(seed))
}
