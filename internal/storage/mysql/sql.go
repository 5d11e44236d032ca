package mysql

// Column list for room reads: every room column plus the live booking count.
const selectRoomWithBookeds = `rooms.*, (SELECT COUNT(*) FROM bookings b WHERE b.room_id = rooms.id) AS bookeds`
