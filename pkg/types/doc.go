// Package types defines the entities, the Dataset of the four school
// tables, the Session value, the Container and RecordStore interfaces,
// configuration, and the standard errors for gradebook.
package types
