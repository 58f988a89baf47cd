package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"preamble.dev/pkg/preamble/internal/adapter"
	adaptermocks "preamble.dev/pkg/preamble/internal/adapter/mocks"
	m "preamble.dev/pkg/preamble/internal/model"
)

func filterConfig() m.RunConfig {
	return m.RunConfig{
		ExcludePrefixes:   []string{"./target", "node_modules"},
		ExcludeSubstrings: []string{"vendor", "/target/"},
		IgnoreEnabled:     true,
	}
}

func TestInclusionFilter_PrefixBeatsOracle(t *testing.T) {
	// The oracle has no expectations: any call fails the test.
	oracle := adaptermocks.NewMockIgnoreOracle(t)
	filter := NewInclusionFilter(filterConfig(), oracle)

	for _, short := range []string{"target/debug/build.rs", "node_modules/x/index.rs", "crates/vendor/lib.rs", "crates/a/target/gen.rs"} {
		file := m.File{FullPath: m.Path("/repo/" + short), ShortPath: m.Path(short)}
		assert.False(t, filter.Include(context.Background(), file), short)
	}
}

func TestInclusionFilter_ConsultsOracleLast(t *testing.T) {
	oracle := adaptermocks.NewMockIgnoreOracle(t)
	oracle.EXPECT().IsIgnored(mock.Anything, "/repo/src/generated.rs").Return(true, nil).Once()
	oracle.EXPECT().IsIgnored(mock.Anything, "/repo/src/lib.rs").Return(false, nil).Once()

	filter := NewInclusionFilter(filterConfig(), oracle)

	assert.False(t, filter.Include(context.Background(), m.File{FullPath: "/repo/src/generated.rs", ShortPath: "src/generated.rs"}))
	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/src/lib.rs", ShortPath: "src/lib.rs"}))
}

func TestInclusionFilter_OracleFailureIncludes(t *testing.T) {
	oracle := adaptermocks.NewMockIgnoreOracle(t)
	oracle.EXPECT().IsIgnored(mock.Anything, mock.Anything).Return(false, adapter.ErrOracleUnavailable).Twice()

	filter := NewInclusionFilter(filterConfig(), oracle)

	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/a.rs", ShortPath: "a.rs"}))
	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/b.rs", ShortPath: "b.rs"}))
}

func TestInclusionFilter_IgnoreDisabled(t *testing.T) {
	oracle := adaptermocks.NewMockIgnoreOracle(t)

	config := filterConfig()
	config.IgnoreEnabled = false

	filter := NewInclusionFilter(config, oracle)

	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/src/lib.rs", ShortPath: "src/lib.rs"}))
}

func TestInclusionFilter_IsPure(t *testing.T) {
	filter := NewInclusionFilter(filterConfig(), nil)
	file := m.File{FullPath: "/repo/src/lib.rs", ShortPath: "src/lib.rs"}

	for i := 0; i < 3; i++ {
		assert.True(t, filter.Include(context.Background(), file))
	}
}

func TestInclusionFilter_Denied(t *testing.T) {
	filter := NewInclusionFilter(filterConfig(), nil)

	assert.True(t, filter.Denied("target"))
	assert.True(t, filter.Denied("crates/a/target"))
	assert.True(t, filter.Denied("third_party/vendor"))
	assert.False(t, filter.Denied("src"))
	assert.False(t, filter.Denied("crates/targets"))
}

func TestInclusionFilter_RootedSubstringAgreesWithDenied(t *testing.T) {
	filter := NewInclusionFilter(m.RunConfig{ExcludeSubstrings: []string{"/gen"}}, nil)

	assert.True(t, filter.Denied("gen"))
	assert.False(t, filter.Include(context.Background(), m.File{FullPath: "/repo/gen/a.rs", ShortPath: "gen/a.rs"}))

	assert.True(t, filter.Denied("src/gen"))
	assert.False(t, filter.Include(context.Background(), m.File{FullPath: "/repo/src/gen/b.rs", ShortPath: "src/gen/b.rs"}))

	assert.False(t, filter.Denied("regen"))
	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/regen/a.rs", ShortPath: "regen/a.rs"}))
}

func TestInclusionFilter_TrailingSlashRuleAtRoot(t *testing.T) {
	filter := NewInclusionFilter(m.RunConfig{ExcludeSubstrings: []string{"/target/"}}, nil)

	assert.True(t, filter.Denied("target"))
	assert.False(t, filter.Include(context.Background(), m.File{FullPath: "/repo/target/x.rs", ShortPath: "target/x.rs"}))
	assert.True(t, filter.Include(context.Background(), m.File{FullPath: "/repo/targets/x.rs", ShortPath: "targets/x.rs"}))
}
