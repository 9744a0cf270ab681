package storage

// sampleStories seeds a new library
var sampleStories = map[string]string{
	"roses.txt": "Roses are {color}, {plural noun} are {color}.\n",

	"zoo-trip.md": `---
title: A Day at the Zoo
tags:
  - animals
  - short
---

Last {day of the week} my {family member} and I took the {vehicle} to the zoo.
The first animal we saw was a {adjective} {animal} eating a {food}. It looked
at us and {past tense verb} so loudly that a {occupation} dropped their
{plural noun}. On the way out I bought a {color} balloon shaped like a
{body part}, and we all agreed it was the most {adjective} day ever.
`,

	"the-interview.md": `---
title: The Job Interview
tags:
  - work
---

"Thank you for coming in, {name}," said the {adjective} manager. "Tell me,
why do you want to work at {company name}?" I took a deep breath and said that
ever since I was {number} years old I had dreamed of {verb ending in ing}
{plural noun} for a living. The manager {past tense verb} and slid a
{noun} across the desk. "You start on {day of the week}. Bring your own
{kitchen utensil}."
`,
}
