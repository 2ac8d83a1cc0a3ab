// Package security recognizes credential formats with gitleaks rules.
package security
