package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "url dsn", err: errors.New("connect postgres://portal:s3cret@db:5432/portal"), want: "connect postgres://portal:****@db:5432/portal"},
		{name: "keyword dsn", err: errors.New("host=db user=portal password=s3cret dbname=portal"), want: "host=db user=portal password=**** dbname=portal"},
		{name: "bearer", err: errors.New("header Bearer abc.def.ghi rejected"), want: "header Bearer **** rejected"},
		{name: "bare jwt", err: errors.New("token eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhIn0.sig_-x rejected"), want: "token **** rejected"},
		{
			name: "bcrypt hash",
			err:  errors.New("hash $2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy bad"),
			want: "hash **** bad",
		},
		{name: "plain", err: errors.New("nothing secret"), want: "nothing secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
