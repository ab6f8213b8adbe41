// Package testutil provides test environments for modpick components.
//
// Key components:
//   - GameEnvironment: a game directory with isolated config and state
//     directories, on an in-memory or a real temporary filesystem
//   - FileTree: declarative file and directory setup
//   - Jar: in-memory mod archives
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when the code under test goes
//     through the real filesystem, as the CLI does
//   - Define test data inline
package testutil
