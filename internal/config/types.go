// Copyright 2025 PrTally, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config types define the configuration structures used throughout
// prtally. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for prtally. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	GitHub        GitHubConfig         `yaml:"github"`
	Defaults      DefaultsConfig       `yaml:"defaults"`
	Organisations map[string]OrgConfig `yaml:"organisations"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and authentication configuration. This allows easy configuration
// for GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all report
// invocations unless overridden by organisation-specific settings or
// command-line flags.
type DefaultsConfig struct {
	PageSize     int    `yaml:"page_size"`
	Organisation string `yaml:"organisation"`
}

// OrgConfig contains organisation-specific overrides that allow fine-tuning
// report behavior per organisation. Lower page sizes help with organisations
// whose pull requests carry very large review histories.
type OrgConfig struct {
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_ACCESS_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize: 50,
		},
		Organisations: make(map[string]OrgConfig),
	}
}
