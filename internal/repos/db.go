package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (event types / services / coupons)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Event types (infantiles / formales / corporativos)
CREATE TABLE IF NOT EXISTS event_types(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Service catalog. Price stays a formatted string; the pricing store parses
-- it once into a numeric base on first encounter.
CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL REFERENCES event_types(id) ON DELETE RESTRICT,
  category TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  location TEXT,
  duration TEXT,
  price TEXT NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  featured INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  capacity INTEGER NOT NULL DEFAULT 0,
  max_per_cart INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_services_event_type ON services(event_type);
CREATE INDEX IF NOT EXISTS idx_services_category   ON services(category);
CREATE INDEX IF NOT EXISTS idx_services_title      ON services(LOWER(title));

-- Fixed coupon catalog (not user-created)
CREATE TABLE IF NOT EXISTS coupons(
  code TEXT PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('percent','fixed')),
  value NUMERIC NOT NULL CHECK (value >= 0),
  description TEXT
);

-- Carts: one per session, at most one applied coupon
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  coupon_code TEXT REFERENCES coupons(code) ON DELETE SET NULL,
  shipping_mode TEXT NOT NULL DEFAULT 'standard'
    CHECK (shipping_mode IN ('standard','express','pickup')),
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  service_id TEXT NOT NULL REFERENCES services(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  max_qty INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, service_id)
);

-- Favorites: session-scoped saved services
CREATE TABLE IF NOT EXISTS favorites(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS favorite_items(
  favorites_id TEXT NOT NULL REFERENCES favorites(id) ON DELETE CASCADE,
  service_id   TEXT NOT NULL REFERENCES services(id) ON DELETE RESTRICT,
  created_at   TEXT,
  PRIMARY KEY (favorites_id, service_id)
);

-- Availability: sparse per-service day records. Absent row = open date.
CREATE TABLE IF NOT EXISTS availability_days(
  service_id TEXT NOT NULL,
  date TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('available','blocked','booked')),
  capacity INTEGER NOT NULL DEFAULT 0,
  used INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  PRIMARY KEY (service_id, date)
);

-- Pricing: numeric base per service plus date-windowed promotions
CREATE TABLE IF NOT EXISTS pricing(
  service_id TEXT PRIMARY KEY,
  base NUMERIC NOT NULL DEFAULT 0,
  last_updated TEXT
);

CREATE TABLE IF NOT EXISTS promotions(
  id TEXT PRIMARY KEY,
  service_id TEXT NOT NULL REFERENCES pricing(service_id) ON DELETE CASCADE,
  label TEXT NOT NULL,
  percent INTEGER NOT NULL CHECK (percent BETWEEN 1 AND 99),
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  CHECK (start_date <= end_date)
);
CREATE INDEX IF NOT EXISTS idx_promotions_service ON promotions(service_id);

-- Notifications: append-only, newest first
CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  service_id TEXT,
  title TEXT NOT NULL,
  message TEXT,
  created_at TEXT NOT NULL,
  read INTEGER NOT NULL DEFAULT 0,
  old_price NUMERIC,
  new_price NUMERIC
);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

-- Reviews
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  service_id TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  user_name TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','responded')),
  response_text TEXT,
  responded_at TEXT,
  responder_id TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_reviews_service ON reviews(service_id);

-- Quote requests
CREATE TABLE IF NOT EXISTS quotes(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  event_type TEXT NOT NULL,
  event_date TEXT,
  guest_count INTEGER NOT NULL DEFAULT 0,
  budget TEXT,
  services_json TEXT,
  message TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CLIENT','PROVIDER')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM event_types`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting event types / services / coupons")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO event_types(id,name) VALUES
	  ('infantiles','Eventos Infantiles'),
	  ('formales','Eventos Formales'),
	  ('corporativos','Eventos Corporativos')`)

	tx.MustExec(`INSERT INTO services(id,event_type,category,title,description,location,duration,price,rating,featured,image,capacity,max_per_cart) VALUES
	  ('inf-001','infantiles','Entretenimiento','Animación Profesional Infantil','Shows interactivos con magos, payasos y personajes favoritos de los niños','Ciudad de México','3 horas','$45,000',4.9,1,'media/animacion-infantil.jpg',30,3),
	  ('inf-002','infantiles','Decoración','Decoración Temática Premium','Decoración personalizada con temas de superhéroes, princesas y caricaturas','Guadalajara','Evento completo','$35,000',4.8,0,'media/decoracion-infantil.jpg',15,0),
	  ('inf-003','infantiles','Catering','Catering Infantil Gourmet','Menús diseñados especialmente para niños con opciones saludables y divertidas','Monterrey','4 horas','$25,000',4.7,1,'media/catering-infantil.jpg',50,0),
	  ('inf-004','infantiles','Fotografía','Fotografía Infantil Artística','Sesiones fotográficas especializadas en capturar momentos mágicos infantiles','Ciudad de México','6 horas','$55,000',4.9,0,'media/fotografia-infantil.jpg',10,2),
	  ('for-001','formales','Fotografía','Fotografía de Bodas Elegante','Fotografía profesional para bodas con estilo artístico y moderno','Ciudad de México','8 horas','$85,000',5.0,1,'media/fotografia-bodas.jpg',8,1),
	  ('for-002','formales','Catering','Catering Gourmet Premium','Servicio de catering con menús personalizados y presentación exquisita','Guadalajara','Evento completo','$45,000',4.8,1,'media/catering-gourmet.jpg',40,0),
	  ('for-003','formales','Música','Banda Musical en Vivo','Banda versátil con repertorio amplio para todo tipo de celebraciones','Monterrey','4 horas','$35,000',4.7,0,'media/banda-musical.jpg',12,0),
	  ('for-004','formales','Coordinación','Coordinación de Eventos Premium','Servicio completo de coordinación y organización de eventos formales','Ciudad de México','Servicio completo','$65,000',4.9,1,'media/coordinacion-eventos.jpg',5,1),
	  ('cor-001','corporativos','Tecnología','Tecnología AV Profesional','Equipos de audio, video y proyección de última generación para conferencias','Ciudad de México','Evento completo','$75,000',4.8,1,'media/tecnologia-av.jpg',25,0),
	  ('cor-002','corporativos','Catering','Catering Ejecutivo Premium','Servicio de catering especializado en eventos corporativos y networking','Guadalajara','6 horas','$55,000',4.7,0,'media/catering-ejecutivo.jpg',60,0),
	  ('cor-003','corporativos','Producción','Producción de Eventos Corporativos','Producción integral para lanzamientos, conferencias y eventos empresariales','Monterrey','Servicio completo','$95,000',4.9,1,'media/produccion-corporativa.jpg',18,0),
	  ('cor-004','corporativos','Personal','Hostess y Personal de Apoyo','Personal profesional capacitado para recepción y atención en eventos corporativos','Ciudad de México','8 horas','$25,000',4.6,0,'media/personal-apoyo.jpg',35,0)`)

	tx.MustExec(`INSERT INTO coupons(code,kind,value,description) VALUES
	  ('BIENVENIDO10','percent',10,'10% de descuento en tu primera compra'),
	  ('ENVIOGRATIS','fixed',150,'Equivalente a envío estándar gratis'),
	  ('VIP25','percent',25,'25% para clientes VIP (demo)')`)

	return tx.Commit()
}

// seedUsers ensures the two demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-cliente", "cliente@demo.com", "Juan Cliente", "CLIENT", "123456"),
		mk("u-proveedor", "proveedor@demo.com", "María Proveedora", "PROVIDER", "123456"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
