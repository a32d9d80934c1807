// SPDX-License-Identifier: Apache-2.0

package semver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct {
		output string
		want   string
	}{
		{"v18.17.0", "18.17.0"},
		{"npm 9.6.7", "9.6.7"},
		{"Docker version 24.0.5, build ced0996", "24.0.5"},
		{"git version 2.39.2", "2.39.2"},
		{"Docker Compose version v2.20.2", "2.20.2"},
		{"node 20", "20"},
	} {
		got, err := Extract(tc.output)
		req.NoError(err, tc.output)
		req.Equal(tc.want, got, tc.output)
	}

	_, err := Extract("command not found")
	req.Error(err)
}

func TestAtLeast(t *testing.T) {
	req := require.New(t)

	ok, err := AtLeast("18.17.0", "18.0.0")
	req.NoError(err)
	req.True(ok)

	ok, err = AtLeast("16.20.2", "18.0.0")
	req.NoError(err)
	req.False(ok)

	ok, err = AtLeast("v18.0.0", "18")
	req.NoError(err)
	req.True(ok)

	_, err = AtLeast("garbage", "18.0.0")
	req.Error(err)
}
