// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the understory CLI.
//
// Configuration is assembled in layers by [Load]:
//
//  1. [Default] built-in values pointing at the public Understory API.
//  2. An optional file named by --config or UNDERSTORY_CONFIG. Files
//     ending in .json or .jsonc are JSON with comments; anything else
//     is YAML. Unknown keys are errors.
//  3. The environment: UNDERSTORY_CLIENT_ID, UNDERSTORY_SECRET_KEY and
//     UNDERSTORY_SCOPES. A .env file in the working directory fills in
//     variables the process environment does not set.
//
// Credentials come only from the environment. A missing client id or
// secret is not a load error: commands that never call the API (help,
// version) work without them, and the token source reports the absence
// when a token is first requested.
package config
