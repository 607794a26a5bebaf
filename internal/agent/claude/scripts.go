package claude

const sessionStartTemplate = `#!/usr/bin/env bash
# promptctl: Claude Code SessionStart hook
# Injects the project's coding guidelines into the session context.

if ! command -v promptctl >/dev/null 2>&1 || ! command -v jq >/dev/null 2>&1; then
  exit 0
fi

guidelines=""
for lang in {{languages}}; do
  body=$(promptctl generate --language "$lang" --role {{role}} --size compact --smart --no-guardrails 2>/dev/null) || continue
  guidelines="${guidelines}${body}"$'\n\n'
done

if [ -z "$guidelines" ]; then
  exit 0
fi

jq -n --arg ctx "$guidelines" '{
  "hookSpecificOutput": {
    "hookEventName": "SessionStart",
    "additionalContext": $ctx
  }
}'
`

const preWriteTemplate = `#!/usr/bin/env bash
# promptctl: Claude Code PreToolUse hook for Write and Edit
# Reminds Claude of the language guidelines before a file is written.

if ! command -v jq >/dev/null 2>&1; then
  exit 0
fi

file_path=$(jq -r '.tool_input.file_path // empty')
if [ -z "$file_path" ]; then
  exit 0
fi

case "${file_path##*.}" in
{{cases}}
  *) exit 0 ;;
esac

jq -n --arg ctx "Follow the promptctl $lang guidelines for the {{role}} role when editing $file_path." '{
  "hookSpecificOutput": {
    "hookEventName": "PreToolUse",
    "additionalContext": $ctx
  }
}'
`
