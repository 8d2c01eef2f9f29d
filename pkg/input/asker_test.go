package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/require"
)

func TestAskerNoPrompt(t *testing.T) {
	ask := NewAsker(true, false, &bytes.Buffer{}, strings.NewReader(""))

	var text string
	require.NoError(t, ask(&survey.Input{Message: "Destination:", Default: "/src"}, &text))
	require.Equal(t, "/src", text)

	require.Error(t, ask(&survey.Input{Message: "Destination:"}, &text))

	var index int
	require.NoError(t, ask(&survey.Select{
		Message: "Policy:",
		Options: []string{"error", "skip"},
		Default: "skip",
	}, &index))
	require.Equal(t, 1, index)

	require.Error(t, ask(&survey.Select{
		Message: "Policy:",
		Options: []string{"error", "skip"},
		Default: "merge",
	}, &index))

	var selection []string
	require.NoError(t, ask(&survey.MultiSelect{
		Message: "Types:",
		Options: []string{"python", "c"},
		Default: []string{"c"},
	}, &selection))
	require.Equal(t, []string{"c"}, selection)

	confirmed := false
	require.NoError(t, ask(&survey.Confirm{Message: "Save?", Default: true}, &confirmed))
	require.True(t, confirmed)
}

func TestAskerLineBased(t *testing.T) {
	stdin := strings.NewReader("\n/dst/python\ny\nn\nskip\ny\n")
	var stdout bytes.Buffer
	ask := NewAsker(false, false, &stdout, stdin)

	var first string
	require.NoError(t, ask(&survey.Input{Message: "Destination for C:", Default: "/dst/c"}, &first))
	require.Equal(t, "/dst/c", first)
	require.Contains(t, stdout.String(), "Destination for C (or hit enter to use the default /dst/c): ")

	var second string
	require.NoError(t, ask(&survey.Input{Message: "Destination for Python:"}, &second))
	require.Equal(t, "/dst/python", second)

	var selection []string
	require.NoError(t, ask(&survey.MultiSelect{
		Message: "Types",
		Options: []string{"python", "c"},
	}, &selection))
	require.Equal(t, []string{"python"}, selection)

	var policy string
	require.NoError(t, ask(&survey.Select{Message: "Policy:", Options: []string{"error", "skip"}}, &policy))
	require.Equal(t, "skip", policy)

	confirmed := false
	require.NoError(t, ask(&survey.Confirm{Message: "Save?"}, &confirmed))
	require.True(t, confirmed)
}

func TestAskerLineBased_InvalidChoice(t *testing.T) {
	ask := NewAsker(false, false, &bytes.Buffer{}, strings.NewReader("merge\n"))

	var policy string
	err := ask(&survey.Select{Message: "Policy:", Options: []string{"error", "skip"}}, &policy)
	require.ErrorContains(t, err, "not an allowed choice")
}

func TestAskerLineBased_ConfirmEOF(t *testing.T) {
	ask := NewAsker(false, false, &bytes.Buffer{}, strings.NewReader("maybe"))

	confirmed := false
	require.Error(t, ask(&survey.Confirm{Message: "Save?"}, &confirmed))
}
