// Package member defines the family-member data model and collection
// snapshot consumed by the layout engine.
//
// # Data Model
//
// [FamilyMember] is the only entity. Members reference each other through
// optional FatherID, MotherID, and SpouseID back-references. References are
// never enforced: they may dangle (point at absent IDs), spouse links may be
// asymmetric, and parent chains may even be cyclic due to data errors. Every
// consumer in this module is written to tolerate such input.
//
// # Collections
//
// [Collection] is an indexed, read-only snapshot:
//
//	c, _ := member.ReadMembersFile("members.json")
//	father, ok := c.Member("m-17")
//	kids := c.ChildrenOf("m-17", "m-18")
//
// The member file format is a plain JSON array of member objects.
//
// # Linting
//
// [Lint] reports relationship anomalies (dangling references, asymmetric
// spouse links, ancestry cycles, duplicate IDs) as structured findings. The
// layout engine never fails on these - linting exists so editing tools can
// surface data problems.
package member
