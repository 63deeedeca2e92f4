package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormSetNestedPreservesSiblings(t *testing.T) {
	t.Parallel()

	form := NewFormState(map[string]any{
		"location": map[string]any{"country": "Kenya", "region": "Nakuru"},
	})
	require.NoError(t, form.Set("location.region", "Kisumu"))

	require.Equal(t, "Kenya", form.String("location.country"))
	require.Equal(t, "Kisumu", form.String("location.region"))
}

func TestFormSetTopLevel(t *testing.T) {
	t.Parallel()

	form := NewFormState(nil)
	require.NoError(t, form.Set("email", "a@b.co"))
	val, ok := form.Get("email")
	require.True(t, ok)
	require.Equal(t, "a@b.co", val)
	require.Equal(t, "", form.String("missing"))
}

func TestFormSetRejectsDeepPaths(t *testing.T) {
	t.Parallel()

	form := NewFormState(nil)
	err := form.Set("a.b.c", "x")
	var pathErr InvalidPathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "a.b.c", pathErr.Path)

	require.Error(t, form.Set("", "x"))
	require.Error(t, form.Set("a.", "x"))
}

func TestFormSetRejectsGroupOverwrite(t *testing.T) {
	t.Parallel()

	form := NewFormState(map[string]any{"location": map[string]any{"country": "Kenya"}})
	require.Error(t, form.Set("location", "flat"))

	require.NoError(t, form.Set("name", "Jane"))
	require.Error(t, form.Set("name.first", "Jane"))
}

func TestFormSnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	defaults := map[string]any{"location": map[string]any{"country": "Kenya"}}
	form := NewFormState(defaults)
	defaults["location"].(map[string]any)["country"] = "Uganda"
	require.Equal(t, "Kenya", form.String("location.country"))

	snap := form.Snapshot()
	snap["location"].(map[string]any)["country"] = "Tanzania"
	require.Equal(t, "Kenya", form.String("location.country"))

	clone := form.Clone()
	require.NoError(t, clone.Set("location.country", "Rwanda"))
	require.Equal(t, "Kenya", form.String("location.country"))
	require.Equal(t, "Rwanda", clone.String("location.country"))
}
