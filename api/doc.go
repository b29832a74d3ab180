// Package api provides the HTTP REST API of the word hunt solver.
//
// Endpoints:
//
// Queries:
//   - POST /api/solve - Find the words on a board
//   - GET /api/solve?letters=... - Same, with query parameters
//   - POST /api/anagrams - Find the words spelled from a set of letters
//
// Dictionaries:
//   - GET /api/dictionaries - List dictionaries with word counts
//   - GET /api/dictionaries/{name} - Words of a dictionary (?prefix=, ?offset=, ?limit=)
//   - POST /api/dictionaries/{name}/words - Merge words into a dictionary
//   - POST /api/dictionaries/{name}/restore - Undo the last merge
//   - POST /api/dictionaries/{name}/candidates - Merge likely words built from a word's letters
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a configuration
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /ws?room=<id> - WebSocket feed of results posted with the same room
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A solve request:
//
//	{
//	  "letters": "catsdogsbirdfish",
//	  "config_id": "classic",        // optional, default config otherwise
//	  "dictionary": "default",       // optional override
//	  "min_word_length": 4,          // optional override
//	  "board_size": 4,               // optional override
//	  "include_paths": true,         // optional, adds one path per word
//	  "room": "table-1"              // optional, broadcast the result
//	}
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. A board whose letter count is
// not size x size and other bad input get 400, unknown configs and
// dictionaries get 404.
package api
