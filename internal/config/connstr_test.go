package config

import (
	"testing"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
)

func embedded(value string) commoncfg.SourceRef {
	return commoncfg.SourceRef{Source: "embedded", Value: value}
}

func invalidRef() commoncfg.SourceRef {
	return commoncfg.SourceRef{Source: "invalid-source", Value: "x"}
}

func TestMakeConnStr(t *testing.T) {
	valid := Database{
		Host:     embedded("db.internal"),
		User:     embedded("bank"),
		Password: embedded("s3cret"),
		Name:     "datamanager",
		Port:     "5432",
	}

	tests := []struct {
		name        string
		mutate      func(d *Database)
		wantConnStr string
		assertErr   assert.ErrorAssertionFunc
	}{
		{
			name:        "plain values",
			mutate:      func(*Database) {},
			wantConnStr: "host=db.internal user=bank password=s3cret dbname=datamanager port=5432",
			assertErr:   assert.NoError,
		},
		{
			name:        "ssl mode",
			mutate:      func(d *Database) { d.SSLMode = "verify-full" },
			wantConnStr: "host=db.internal user=bank password=s3cret dbname=datamanager port=5432 sslmode=verify-full",
			assertErr:   assert.NoError,
		},
		{
			name:        "quotes a password with spaces and quotes",
			mutate:      func(d *Database) { d.Password = embedded(`it's a \secret`) },
			wantConnStr: `host=db.internal user=bank password='it\'s a \\secret' dbname=datamanager port=5432`,
			assertErr:   assert.NoError,
		},
		{
			name:        "quotes an empty password",
			mutate:      func(d *Database) { d.Password = embedded("") },
			wantConnStr: "host=db.internal user=bank password='' dbname=datamanager port=5432",
			assertErr:   assert.NoError,
		},
		{
			name:      "invalid host source",
			mutate:    func(d *Database) { d.Host = invalidRef() },
			assertErr: assert.Error,
		},
		{
			name:      "invalid user source",
			mutate:    func(d *Database) { d.User = invalidRef() },
			assertErr: assert.Error,
		},
		{
			name:      "invalid password source",
			mutate:    func(d *Database) { d.Password = invalidRef() },
			assertErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := valid
			tt.mutate(&conf)

			connStr, err := MakeConnStr(conf)
			if !tt.assertErr(t, err) || err != nil {
				return
			}

			assert.Equal(t, tt.wantConnStr, connStr)
		})
	}
}

func TestQuoteConnValue(t *testing.T) {
	tests := map[string]string{
		"plain":     "plain",
		"":          "''",
		"two words": "'two words'",
		`a\b`:       `'a\\b'`,
	}

	for in, want := range tests {
		assert.Equal(t, want, quoteConnValue(in), in)
	}
}
