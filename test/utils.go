package test

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"runtime"

	. "github.com/onsi/gomega"

	"github.com/kardolus/taskpilot/api"
)

// FileToBytes reads a fixture from test/data.
func FileToBytes(fileName string) ([]byte, error) {
	_, thisFile, _, _ := runtime.Caller(0)

	fixture, err := filepath.Abs(path.Join(thisFile, "..", "data", fileName))
	if err != nil {
		return nil, err
	}

	Expect(fixture).To(BeAnExistingFile())

	return os.ReadFile(fixture)
}

// CompletionsBody wraps content in a chat completions reply.
func CompletionsBody(content string) ([]byte, error) {
	var resp api.CompletionsResponse
	resp.ID = "chatcmpl-test"
	resp.Object = "chat.completion"
	resp.Model = "test-model"
	resp.Choices = append(resp.Choices, struct {
		Message      api.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
		Index        int         `json:"index"`
	}{
		Message:      api.Message{Role: "assistant", Content: content},
		FinishReason: "stop",
	})

	return json.Marshal(resp)
}
