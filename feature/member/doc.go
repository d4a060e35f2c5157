// Package member serves member profiles.
//
// The Repository resolves members by case-insensitive handle and is shared
// with the statistics and skills features. The HTTP surface is:
//
//   - GET /members/:handle returns the profile. Secure fields are removed
//     and the last name is reduced to its initial unless the caller manages
//     the member.
//   - POST /members/:handle/photo uploads a photo to object storage and
//     records its public URL.
package member
