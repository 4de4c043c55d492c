package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kardolus/taskpilot/agent"
)

const planSystemPrompt = `You are a coding agent working inside a local project workspace. You carry out tasks described in natural language by planning tool invocations.

You have access to these tools:
- read_file: Read file contents. Parameters: { "path": "relative/path/to/file" }
- write_file: Write or replace file contents. Parameters: { "path": "...", "content": "..." }
- create_file: Create a new file. Parameters: { "path": "...", "content": "..." }
- create_directory: Create a new directory. Parameters: { "path": "..." }
- delete_file: Delete a file. Parameters: { "path": "..." }
- list_directory: List directory contents. Parameters: { "path": "." }
- execute_command: Run a shell command. Parameters: { "command": "npm install", "cwd": "optional/path", "timeout": 30000 }
- search_files: Find files by glob, optionally by content. Parameters: { "pattern": "**/*.go", "content": "optional search text" }
- ask_user: Ask the user for clarification. Parameters: { "question": "..." }

When given a task:
1. Work out what needs to be done
2. Build a step-by-step plan using only the tools above
3. Reply with ONLY a JSON object holding the plan

The reply MUST use this format:
{
  "plan": [
    {
      "action": "tool_name",
      "parameters": { },
      "expected_outcome": "what this step achieves"
    }
  ],
  "reasoning": "short explanation of the approach",
  "confidence": 0.85
}

Rules:
- Only use tool names from the list above
- Parameters must match what each tool expects
- Use paths relative to the workspace root
- A step may carry an optional "rollback_plan": a list of steps that undo it
- Confidence is a number between 0.0 and 1.0`

const chatSystemPrompt = `You are a helpful assistant for developers working in a terminal. You answer questions, explain code and give programming advice.

Be concise but complete. If the user asks you to perform a task such as creating a file or running a command, say that they should submit it as a task instead of a chat message.`

const formatSystemPrompt = `A tool was executed on behalf of a developer. Present its result in a readable way.

Guidelines:
- Show file and directory listings as a tree or an organized list
- For error output, point out the key problem
- For command output, summarize what matters
- Stay short, and mention a next step when it helps

Reply with ONLY the formatted result, no JSON.`

const maxOpenFilesInPrompt = 5

func buildTaskPrompt(task string, pc agent.ProjectContext, actions []agent.ActionKind) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n\n", task)
	b.WriteString("Project Context:\n")
	fmt.Fprintf(&b, "- Workspace: %s\n", pc.WorkspaceRoot)
	fmt.Fprintf(&b, "- Current File: %s\n", orDefault(pc.CurrentFile, "none"))

	open := pc.OpenFiles
	if len(open) > maxOpenFilesInPrompt {
		open = open[:maxOpenFilesInPrompt]
	}
	fmt.Fprintf(&b, "- Open Files: %s\n", orDefault(strings.Join(open, ", "), "none"))
	fmt.Fprintf(&b, "- Project Type: %s\n", orDefault(pc.ProjectType, "unknown"))

	if len(pc.RecentErrors) > 0 {
		msgs := make([]string, 0, len(pc.RecentErrors))
		for _, e := range pc.RecentErrors {
			msgs = append(msgs, e.Message)
		}
		fmt.Fprintf(&b, "- Recent Errors: %s\n", strings.Join(msgs, "; "))
	}

	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	fmt.Fprintf(&b, "\nAvailable Tools: %s\n\n", strings.Join(names, ", "))
	b.WriteString("IMPORTANT: if a directory is needed, create it with 'create_directory' before creating files in it.\n\n")
	b.WriteString("Analyze this task and reply with a JSON execution plan.")

	return b.String()
}

func buildAnalyzePrompt(info agent.ErrorInfo) string {
	var b strings.Builder

	b.WriteString("Analyze this error and suggest fixes:\n\n")
	fmt.Fprintf(&b, "Error: %s\n", info.Message)
	fmt.Fprintf(&b, "Type: %s\n", info.Kind)
	fmt.Fprintf(&b, "Context: %s\n", info.Context)
	if info.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", info.Source)
	}
	b.WriteString(`
Reply with JSON:
{
  "analysis": "what went wrong",
  "suggestions": [
    {
      "action": "tool_name",
      "parameters": { },
      "expected_outcome": "what this fixes"
    }
  ]
}`)

	return b.String()
}

func buildFormatPrompt(action agent.ActionKind, res agent.ToolResult, task string) string {
	rendered, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		rendered = []byte(res.Output)
	}

	return fmt.Sprintf("Tool Used: %s\nOriginal Request: %s\nTool Result:\n%s", action, task, rendered)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
