package nsec3

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// MaxSaltLen is the longest salt an NSEC3 record can carry
const MaxSaltLen = 255

// ParseSalt decodes a hex salt. Empty text means no salt. Text that is not
// valid hex is used as raw bytes and a warning is logged.
func ParseSalt(salt string, logger *logrus.Entry) []byte {
	if salt == "" {
		return nil
	}

	res, err := hex.DecodeString(salt)
	if err != nil {
		logger.WithField("salt", salt).Warnf("invalid hex salt, using as-is: %v", err)

		res = []byte(salt)
	}

	if len(res) > MaxSaltLen {
		logger.WithField("salt", salt).Warnf("salt is %d bytes long, NSEC3 allows at most %d", len(res), MaxSaltLen)
	}

	return res
}
