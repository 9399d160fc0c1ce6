// Package domain contains the core content entities, annotation records,
// and domain logic of the application. It represents the heart of the
// system, independent of any specific infrastructure or delivery
// mechanism.
package domain
