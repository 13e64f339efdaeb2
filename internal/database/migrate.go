package database

import "database/sql"

// Migrate creates the schema on startup. Statements are idempotent so the
// server can be restarted against an existing database.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL DEFAULT '',
			role ENUM('patient', 'admin') NOT NULL DEFAULT 'patient',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS medicines (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			category VARCHAR(128) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			stock INT NOT NULL DEFAULT 0,
			low_stock_threshold INT NOT NULL DEFAULT 10,
			image VARCHAR(512),
			description TEXT,
			manufacturer VARCHAR(255),
			expiry_date DATETIME,
			used_for VARCHAR(512),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			CONSTRAINT chk_medicines_stock CHECK (stock >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			reference CHAR(36) NOT NULL UNIQUE,
			customer_name VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(32) NOT NULL,
			subtotal DECIMAL(10,2) NOT NULL,
			service_tax DECIMAL(10,2) NOT NULL,
			total DECIMAL(10,2) NOT NULL,
			status ENUM('pending', 'confirmed', 'delivered') NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			medicine_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DECIMAL(10,2) NOT NULL,
			quantity INT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (medicine_id) REFERENCES medicines(id)
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			patient_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL,
			age INT NOT NULL,
			gender VARCHAR(16) NOT NULL,
			department VARCHAR(128) NOT NULL,
			appointment_date DATETIME NOT NULL,
			appointment_time VARCHAR(16) NOT NULL,
			symptoms TEXT NOT NULL,
			bed_type VARCHAR(32) NOT NULL,
			slot VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'current',
			consultation_fee DECIMAL(10,2) NOT NULL DEFAULT 1500,
			bed_charges DECIMAL(10,2),
			medicine_charges DECIMAL(10,2),
			lab_charges DECIMAL(10,2),
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			user_id BIGINT,
			is_emergency BOOLEAN NOT NULL DEFAULT FALSE,
			emergency_type VARCHAR(128),
			priority ENUM('low', 'medium', 'high', 'critical') NOT NULL DEFAULT 'medium',
			is_pregnancy BOOLEAN NOT NULL DEFAULT FALSE,
			pregnancy_weeks INT,
			pregnancy_type VARCHAR(128),
			latitude DOUBLE,
			longitude DOUBLE,
			address VARCHAR(512),
			assigned_doctor VARCHAR(255),
			doctor_id BIGINT,
			booked_on DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS emergencies (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			patient_name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(32) NOT NULL,
			age INT,
			gender VARCHAR(16) NOT NULL,
			emergency_type VARCHAR(128) NOT NULL,
			symptoms TEXT NOT NULL,
			priority ENUM('low', 'medium', 'high', 'critical') NOT NULL DEFAULT 'medium',
			status ENUM('pending', 'accepted', 'completed', 'cancelled') NOT NULL DEFAULT 'pending',
			latitude DOUBLE,
			longitude DOUBLE,
			address VARCHAR(512),
			is_pregnancy BOOLEAN NOT NULL DEFAULT FALSE,
			pregnancy_weeks INT,
			pregnancy_complications TEXT,
			assigned_doctor VARCHAR(255),
			assigned_ambulance VARCHAR(64),
			estimated_arrival DATETIME,
			user_id BIGINT,
			admin_notes TEXT,
			completed_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS doctors (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			specialty VARCHAR(128) NOT NULL,
			experience VARCHAR(64) NOT NULL,
			status ENUM('Available', 'Busy', 'Off Duty') NOT NULL DEFAULT 'Available',
			attendance VARCHAR(16) NOT NULL DEFAULT '95%',
			image VARCHAR(512),
			phone VARCHAR(32) NOT NULL,
			email VARCHAR(255) NOT NULL,
			qualifications JSON,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ai_chat_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			user_role VARCHAR(32) NOT NULL,
			user_message TEXT NOT NULL,
			ai_response TEXT NOT NULL,
			tokens_used INT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
