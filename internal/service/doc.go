// Package service contains the application use cases. Each use case
// orchestrates domain entities against the persistence gateway and the user
// directory; collaborators are injected at construction time and domain
// errors propagate unmodified to the HTTP boundary.
package service
