package mysql

// -----------------------------------------------------------------------------
// WRITE QUERIES (catalog import)
// -----------------------------------------------------------------------------

const upsertHotelSQL = `
INSERT INTO hotels (id, name, image)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name  = VALUES(name),
  image = VALUES(image)
`

const insertRoomsPrefix = "INSERT INTO rooms\n  (id, name, capacity, hotel_id)\nVALUES "

// A room listed under another hotel upstream moves to it.
const insertRoomsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  name     = VALUES(name),\n" +
	"  capacity = VALUES(capacity),\n" +
	"  hotel_id = VALUES(hotel_id)\n"

const roomOwnersPrefix = "SELECT DISTINCT hotel_id FROM rooms WHERE hotel_id <> ? AND id IN "

const deleteRoomsSQL = "DELETE FROM rooms WHERE hotel_id = ?"

const insertMissSQL = `
INSERT INTO import_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP(3)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// No ORDER BY: callers get storage order.
const findAllHotelsSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
`

const findHotelSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
WHERE id = ?
`

const findRoomsByHotelSQL = `
SELECT id, name, capacity, hotel_id, created_at, updated_at
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

// Enrollment joined with its (optional) address.
const findEnrollmentByUserSQL = `
SELECT
  e.id, e.user_id, e.name, e.cpf, e.phone, e.created_at, e.updated_at,
  a.id, a.cep, a.street, a.city, a.state, a.number, a.neighborhood, a.address_detail
FROM enrollments e
LEFT JOIN addresses a ON a.enrollment_id = e.id
WHERE e.user_id = ?
`

// Ticket joined with its type; newest ticket wins if several exist.
const findTicketByEnrollmentSQL = `
SELECT
  t.id, t.enrollment_id, t.status, t.created_at, t.updated_at,
  tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel
FROM tickets t
JOIN ticket_types tt ON tt.id = t.ticket_type_id
WHERE t.enrollment_id = ?
ORDER BY t.id DESC
LIMIT 1
`

const findSessionByTokenSQL = `
SELECT id, user_id, token
FROM sessions
WHERE token = ?
LIMIT 1
`
