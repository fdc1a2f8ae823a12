package config

import (
	"fmt"
	"strings"
)

// HashMode selects how names are fed to the NSEC3 hash
type HashMode int

const (
	// HashModeText hashes the lower-cased presentation form of the name
	HashModeText HashMode = iota
	// HashModeWire hashes the canonical wire form (RFC 5155)
	HashModeWire
)

// DatabaseType is the kind of SQL database mirroring the hash tables
type DatabaseType int

const (
	DatabaseTypeNone DatabaseType = iota
	DatabaseTypeMysql
	DatabaseTypePostgresql
	DatabaseTypeSqlite
)

// nolint:gochecknoglobals
var (
	hashModeNames     = []string{"text", "wire"}
	databaseTypeNames = []string{"none", "mysql", "postgresql", "sqlite"}
)

func parseEnum(kind, name string, names []string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%s is not a valid %s, try [%s]", name, kind, strings.Join(names, ", "))
}

func enumString(kind string, x int, names []string) string {
	if x >= 0 && x < len(names) {
		return names[x]
	}

	return fmt.Sprintf("%s(%d)", kind, x)
}

func (x HashMode) String() string {
	return enumString("HashMode", int(x), hashModeNames)
}

// ParseHashMode converts a string to a HashMode
func ParseHashMode(name string) (HashMode, error) {
	i, err := parseEnum("HashMode", name, hashModeNames)

	return HashMode(i), err
}

// HashModeNames returns the accepted mode names
func HashModeNames() []string {
	return append([]string(nil), hashModeNames...)
}

// MarshalText implements `encoding.TextMarshaler`.
func (x HashMode) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (x *HashMode) UnmarshalText(text []byte) error {
	tmp, err := ParseHashMode(string(text))
	if err != nil {
		return err
	}

	*x = tmp

	return nil
}

// Set implements `pflag.Value` so the mode can be bound to a flag.
func (x *HashMode) Set(s string) error {
	return x.UnmarshalText([]byte(s))
}

// Type implements `pflag.Value`.
func (x *HashMode) Type() string {
	return "mode"
}

func (x DatabaseType) String() string {
	return enumString("DatabaseType", int(x), databaseTypeNames)
}

// ParseDatabaseType converts a string to a DatabaseType
func ParseDatabaseType(name string) (DatabaseType, error) {
	i, err := parseEnum("DatabaseType", name, databaseTypeNames)

	return DatabaseType(i), err
}

// MarshalText implements `encoding.TextMarshaler`.
func (x DatabaseType) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (x *DatabaseType) UnmarshalText(text []byte) error {
	tmp, err := ParseDatabaseType(string(text))
	if err != nil {
		return err
	}

	*x = tmp

	return nil
}
