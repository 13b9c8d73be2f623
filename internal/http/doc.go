// Package http provides HTTP handlers and middleware for the planner API.
//
// The router exposes the following endpoints:
//   - POST /members, GET /members/{memberID}: member registry endpoints
//     exchanging the payloads defined in member_handler.go.
//   - POST /places, GET /places: place catalog endpoints. Listing is paged
//     via `page` and `page_size` query parameters.
//   - POST /schedules, GET /schedules, GET /schedules/{scheduleID},
//     PUT /schedules/{scheduleID}, DELETE /schedules/{scheduleID}: schedule
//     lifecycle endpoints exchanging the payloads defined in
//     schedule_handler.go. Detail responses bundle the itinerary and one page
//     of the place catalog; update replaces the full itinerary.
//   - POST /schedules/{scheduleID}/routes: appends a place to the end of the
//     itinerary.
//   - POST /schedules/{scheduleID}/attendees, GET .../attendees,
//     DELETE .../attendees (leave), PATCH .../attendees/{attendeeID},
//     DELETE .../attendees/{attendeeID}: roster endpoints. Invites address
//     members by email; only the schedule author may invite, re-grade, or
//     remove.
//   - POST /schedules/{scheduleID}/chats, GET /schedules/{scheduleID}/chats:
//     schedule chat. Pages are zero-based, oldest first, with sender
//     profiles resolved.
//
// Mutating endpoints identify the caller through the `X-Member-ID` header;
// requests without it receive 401. Request/response DTOs live alongside their
// respective handlers so tests and documentation share the same ground truth.
package http
