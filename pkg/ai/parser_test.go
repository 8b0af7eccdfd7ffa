package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuestionBlockFullResponse(t *testing.T) {
	text := `- Easy Question: What is a binary tree?
Answer: A tree where every node has at most two children.
- Moderate Question: Why does in-order traversal of a BST yield sorted output?
Answer: Because the left subtree holds smaller keys and the right larger ones.
- Difficult Question: How would you rebalance after repeated insertions?
Answer: By applying rotations as in AVL or red-black trees.`

	block, err := ParseQuestionBlock(text)
	require.NoError(t, err)
	require.NotNil(t, block.Easy)
	require.Equal(t, "What is a binary tree?", block.Easy.Question)
	require.NotNil(t, block.Easy.Answer)
	require.Equal(t, "A tree where every node has at most two children.", *block.Easy.Answer)
	require.NotNil(t, block.Moderate)
	require.NotNil(t, block.Moderate.Answer)
	require.NotNil(t, block.Difficult)
	require.NotNil(t, block.Difficult.Answer)
}

func TestParseQuestionBlockMissingAnswersStayNil(t *testing.T) {
	text := `- Easy Question: Define recursion.
- Moderate Question: Compare recursion with iteration.
Answer: Iteration carries explicit state, recursion uses the call stack.`

	block, err := ParseQuestionBlock(text)
	require.NoError(t, err)
	require.NotNil(t, block.Easy)
	// The first Answer line attaches to the first unanswered question.
	require.NotNil(t, block.Easy.Answer)
	require.Equal(t, "Iteration carries explicit state, recursion uses the call stack.", *block.Easy.Answer)
	require.NotNil(t, block.Moderate)
	require.Nil(t, block.Moderate.Answer)
	require.Nil(t, block.Difficult)
}

func TestParseQuestionBlockRejectsUnlabelledText(t *testing.T) {
	_, err := ParseQuestionBlock("The model refused to answer.")
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestCleanJSONResponseStripsFences(t *testing.T) {
	text := "```json\n{\"status\": \"Yes\"} // all good\n```"
	require.Equal(t, `{"status": "Yes"}`, CleanJSONResponse(text))
}

func TestCleanJSONResponsePassesPlainJSON(t *testing.T) {
	require.Equal(t, `{"status": "No"}`, CleanJSONResponse(`{"status": "No"}`))
}
