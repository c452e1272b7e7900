package mysql

// Shared column list so insert, upsert and select stay in the same order.
const propertyColumns = `
  feed_id, title, description, location, address, county, country,
  neighborhood_area, latitude, longitude, check_in_hour, check_out_hour,
  num_of_guests, num_of_children, maximum_guests, allow_extra_guests,
  currency, price_range, price, price_per_night, additional_guest_price,
  children_price, amenities, house_rules, images, video_link, verified,
  favorite, allow_instant_booking, show_contact_form_instead_of_booking,
  property_type, page, rating`

const propertyPlaceholders = `
  (?, ?, ?, ?, ?, ?, ?,
   ?, ?, ?, ?, ?,
   ?, ?, ?, ?,
   ?, ?, ?, ?, ?,
   ?, ?, ?, ?, ?, ?,
   ?, ?, ?,
   ?, ?, ?)`

const insertPropertySQL = `
INSERT INTO properties (` + propertyColumns + `)
VALUES ` + propertyPlaceholders

// Feed imports are idempotent per feed_id. LAST_INSERT_ID(id) makes the
// duplicate branch report the existing row id through LastInsertId.
const upsertFeedPropertySQL = insertPropertySQL + `
ON DUPLICATE KEY UPDATE
  id          = LAST_INSERT_ID(id),
  title       = VALUES(title),
  description = VALUES(description),
  location    = VALUES(location),
  address     = VALUES(address),
  county      = VALUES(county),
  country     = VALUES(country),
  neighborhood_area = VALUES(neighborhood_area),
  latitude    = VALUES(latitude),
  longitude   = VALUES(longitude),
  check_in_hour  = VALUES(check_in_hour),
  check_out_hour = VALUES(check_out_hour),
  num_of_guests  = VALUES(num_of_guests),
  num_of_children = VALUES(num_of_children),
  maximum_guests  = VALUES(maximum_guests),
  allow_extra_guests = VALUES(allow_extra_guests),
  currency    = VALUES(currency),
  price_range = VALUES(price_range),
  price       = VALUES(price),
  price_per_night = VALUES(price_per_night),
  additional_guest_price = VALUES(additional_guest_price),
  children_price = VALUES(children_price),
  amenities   = VALUES(amenities),
  house_rules = VALUES(house_rules),
  images      = VALUES(images),
  video_link  = VALUES(video_link),
  verified    = VALUES(verified),
  favorite    = VALUES(favorite),
  allow_instant_booking = VALUES(allow_instant_booking),
  show_contact_form_instead_of_booking = VALUES(show_contact_form_instead_of_booking),
  property_type = VALUES(property_type),
  page        = VALUES(page),
  rating      = VALUES(rating),
  updated_at  = CURRENT_TIMESTAMP
`

const selectPropertySQL = `
SELECT id, ` + propertyColumns + `
FROM properties`

const getPropertySQL = selectPropertySQL + `
WHERE id = ?`

// `text` is reserved; keep it quoted everywhere.
const listReviewsByUserSQL = "SELECT id, user_id, rating, title, `text`, created_at, raw\n" +
	"FROM user_reviews\n" +
	"WHERE user_id = ?\n" +
	"ORDER BY id"

const insertMissSQL = `
INSERT INTO feed_misses (feed_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP, http_status = VALUES(http_status), reason = VALUES(reason)
`
