package generation

// Default system instructions. Both are deliberately narrow: the
// classifier is steered toward a machine-readable reply ParseTags can
// recover even when the model ignores the formatting request.
const (
	classifySystemPrompt = `You label social feed posts. Reply with a JSON array of short topical tag strings describing the post, for example ["Science","Space"]. Reply with the array only, no explanation.`

	summarizeSystemPrompt = `You summarize discussion threads. Given a JSON comment tree, reply with a short markdown summary of the main points and notable disagreements. Do not quote usernames.`
)
