package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/gsearch/internal/cli"
)

func Test_Examples_Lists_All_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	lines := strings.Split(c.MustRun("examples"), "\n")

	require.Len(t, lines, 20)
	assert.Equal(t, "1  Find PDFs on example.com", strings.TrimSpace(lines[0]))
	assert.Equal(t, "20  Combined operators", strings.TrimSpace(lines[19]))
}

func Test_Example_Prints_URL_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "fixed dates",
			args: []string{"example", "--query", "18"},
			want: "world war ii after:1939-01-01 before:1945-12-31",
		},
		{
			name: "relative window resolved today",
			args: []string{"example", "--query", "5"},
			want: "climate change site:news.com after:2024-02-15",
		},
		{
			name: "video search",
			args: []string{"example", "15"},
			want: "https://www.google.com/search?q=cooking+tutorial+inurl%3Avideo&tbm=vid",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			assert.Equal(t, tt.want, c.MustRun(tt.args...))
		})
	}
}

func Test_Example_Fails_When_Number_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("example", "21")
	assert.Contains(t, stderr, "example not found")
}
