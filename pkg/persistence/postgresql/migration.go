package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create tasks table
			CREATE TABLE tasks (
				id UUID PRIMARY KEY,
				tenant_id UUID NOT NULL,
				subject VARCHAR(200) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				priority VARCHAR(20) NOT NULL CHECK (priority IN ('Low', 'Normal', 'High', 'Urgent')),
				owner_id UUID NOT NULL,
				assignee_ids UUID[] NOT NULL DEFAULT '{}',
				due_date TIMESTAMP WITH TIME ZONE,
				related_entity_type VARCHAR(50),
				related_entity_id VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_tasks_tenant_id ON tasks(tenant_id);
			CREATE INDEX idx_tasks_owner_id ON tasks(owner_id);
			CREATE INDEX idx_tasks_due_date ON tasks(due_date);

			-- Create leads table
			CREATE TABLE leads (
				id UUID PRIMARY KEY,
				tenant_id UUID NOT NULL,
				first_name VARCHAR(100) NOT NULL DEFAULT '',
				last_name VARCHAR(100) NOT NULL DEFAULT '',
				company_name VARCHAR(200) NOT NULL DEFAULT '',
				email VARCHAR(255) NOT NULL DEFAULT '',
				status VARCHAR(20) NOT NULL,
				rating VARCHAR(20) NOT NULL,
				score INT NOT NULL DEFAULT 0 CHECK (score BETWEEN 0 AND 100),
				description VARCHAR(2000) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_leads_tenant_id ON leads(tenant_id);
			CREATE INDEX idx_leads_status ON leads(status);

			-- Create contacts table
			CREATE TABLE contacts (
				id UUID PRIMARY KEY,
				tenant_id UUID NOT NULL,
				first_name VARCHAR(100) NOT NULL DEFAULT '',
				last_name VARCHAR(100) NOT NULL DEFAULT '',
				email VARCHAR(255) NOT NULL DEFAULT '',
				notes VARCHAR(1000) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_contacts_tenant_id ON contacts(tenant_id);
		`,
		2: `
			-- Create notifications table
			CREATE TABLE notifications (
				id UUID PRIMARY KEY,
				tenant_id UUID NOT NULL,
				user_id UUID NOT NULL,
				title VARCHAR(255) NOT NULL,
				message TEXT NOT NULL,
				type VARCHAR(20) NOT NULL,
				channel VARCHAR(20) NOT NULL,
				status VARCHAR(20) NOT NULL CHECK (status IN ('Pending', 'Sent', 'Failed')),
				related_entity_type VARCHAR(50),
				related_entity_id UUID,
				action_url TEXT,
				action_text VARCHAR(100),
				icon VARCHAR(100),
				metadata JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				sent_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_notifications_tenant_user ON notifications(tenant_id, user_id);
			CREATE INDEX idx_notifications_status ON notifications(status);
		`,
	}
}
