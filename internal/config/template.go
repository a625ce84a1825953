package config

const configTemplate = `# qq configuration file

# Provider used to answer questions: anthropic, gemini, cerebras or claude (Claude Code CLI)
provider: anthropic

# Model name (optional, uses the provider default if omitted)
# model: claude-sonnet-4-20250514

# Upper bound on answer length
max_tokens: 300

# Anthropic API key (prefer the ANTHROPIC_API_KEY or CLAUDE_API_KEY environment variable)
# api_key: sk-ant-...

# Provider-specific settings
providers:
  gemini:
    # api_key: ${GEMINI_API_KEY}
    # model: gemini-2.5-flash
  cerebras:
    # api_key: ${CEREBRAS_API_KEY}
    # model: qwen-3-coder-480b
  claude:
    # Path to claude CLI if not in PATH (optional)
    # cli_path: /usr/local/bin/claude

# Output
format: true        # render **bold**, *italic*, ` + "`code`" + ` and ~~strike~~ as ANSI
color: auto         # auto (terminals only), always (e.g. for less -R) or never
spinner: true       # show a spinner on stderr while waiting
typing: false       # print the answer with a typing effect
typing_delay: 8ms

# Observability settings
log_level: warn  # debug, info, warn, error
`

const customPromptTemplate = `# Your custom prompt goes here
#
# This will be APPENDED to the default system prompt, so you can add
# additional instructions without losing the default behavior.
#
# Examples:
# - Always respond in a specific language
# - Add domain-specific knowledge
# - Modify the response style
# - Add personality traits
#
# Delete these comments and add your custom instructions below:

`
